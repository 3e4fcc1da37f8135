// This file is part of Gopher6526.
//
// Gopher6526 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6526 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6526.  If not, see <https://www.gnu.org/licenses/>.

// Package recorder handles recording and playback of input events. A
// recording is a text file, with a short header followed by one line per
// event:
//
//	<cycle>, <chip>, <port>, <mask>, <value>, <hash>
//
// The hash field is the value of a digest.Registers at the moment of the
// event. On playback the hash is compared with the state of the playback
// machine and an error with the PlaybackHashError pattern is returned if they
// differ. This makes a recording a regression test of the emulation.
//
// Recording and playback both reset the machine they are attached to.
package recorder

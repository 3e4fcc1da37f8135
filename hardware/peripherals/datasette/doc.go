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

// Package datasette emulates the tape deck of the C64 by playing a sound file
// into the read line of the tape port. The read line is connected to the FLAG
// pin of CIA1 and so every falling edge of the signal requests a FLAG
// interrupt.
//
// Tapes are loaded from WAV or MP3 files. Only the first channel of a stereo
// file is used. A sample is considered high if it is above the threshold set
// in the hardware preferences.
//
// The datasette implements the hardware.Peripheral interface and should be
// attached to the machine with AttachPeripheral(). The tape advances one
// sample for every period of the sample rate, measured in cycles of the
// system clock.
package datasette

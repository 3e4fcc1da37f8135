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

// Package input coordinates the different types of input into the machine.
// The types of input handled by the package are:
//
// 1) Immediate input from a peripheral or a driver (HandleEvent)
// 2) Playback of a previously recorded script (see recorder package)
// 3) Pushed events
//
// An input event changes the level of one or more pins on one of the CIA
// ports. Events handled by the input package can be recorded for later
// playback by attaching an EventRecorder.
//
// Pushed events are events that have arrived from a different goroutine. For
// example, the terminal package reads keypresses in its own goroutine and
// pushes them onto the queue. The queue is drained by Handle(), which must be
// called from the emulation's goroutine between cycles. This is the only way
// that another goroutine should affect the state of the machine.
//
// The input package will return an error for impossible situations. For
// example, a playback and a recorder can not be attached at the same time.
package input

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

// Package timer implements the two interval timers of the CIA.
//
// The timers are 16 bit down counters. Each timer has a latch from which the
// counter is reloaded when it underflows, or when the force load bit of the
// control register is written. Counting is driven entirely by the delay
// pipeline: a running timer feeds the count group on every cycle and the
// counter is decremented when the action reaches the last stage of the group.
// This is what causes a timer to start counting one cycle after the control
// register is written and to skip a count after every reload.
//
// Underflow of a timer raises an interrupt and, if the control register says
// so, drives PB6 (timer A) or PB7 (timer B) either as a one cycle pulse or as
// a toggle.
package timer

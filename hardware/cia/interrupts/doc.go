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

// Package interrupts implements the interrupt control register of the CIA.
//
// Five sources can request an interrupt: the two timers, the time-of-day
// alarm, the serial shift register and the FLAG pin. A request sets the
// source's bit in the pending register. If the source is enabled in the mask
// register the interrupt line is asserted and bit 7 of the status register is
// set.
//
// Reading the status register is destructive. All pending bits are cleared
// and the line is released, whatever value the read returned.
//
// Request() takes effect immediately. Raise() is used by sources inside the
// chip and goes through the delay pipeline: the pending bit is set
// immediately but bit 7 and the line follow one cycle later.
package interrupts

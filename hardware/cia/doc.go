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

// Package cia emulates the 6526 Complex Interface Adapter. The C64 has two of
// them, differing only in the interrupt line they are connected to and in
// the address window in which they appear. The identity of each chip is
// therefore decided by whoever creates it, with the interrupts.Line argument
// to NewCIA().
//
// The CIA is made up of the sub-systems in the sub-packages: the ports, the
// interrupt controller, the two timers, the serial shift register and the
// time-of-day clock. The sub-systems share a single delay pipeline, which is
// how the CIA reproduces the one cycle delays between a register write and
// its effect.
//
// Step() must be called once per cycle. Register access with Read() and
// Write() can happen at any point between calls to Step() and the effect is
// as though the access happened in the cycle of the next call to Step().
package cia

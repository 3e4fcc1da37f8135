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

// Package hardware is the base package for the emulated machine. The Machine
// type collates the two CIA chips and the interrupt lines they are connected
// to:
//
//	CIA1 -> IRQ  $DC00-$DCFF
//	CIA2 -> NMI  $DD00-$DDFF
//
// The two chips are the same type and differ only in the interrupt line and
// the address window. The registers of each chip are mirrored through the
// window.
//
// The Machine implements the bus.CPUBus and bus.DebuggerBus interfaces. An
// access to an address outside of the two windows results in an error with
// the UnmappedAddress pattern.
//
// The Step() function moves the machine forward one cycle. The Run() and
// RunForCycles() functions call Step() in a loop until the continueCheck
// function says otherwise.
//
// Peripherals that need to be stepped every cycle can be attached with
// AttachPeripheral(). For example, the datasette package.
package hardware

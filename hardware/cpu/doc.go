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

// Package cpu provides the CPU side of the interrupt signalling in the
// machine. It does not emulate the processor. It is the point at which the
// interrupt lines of the CIA chips are collected for the processor, or for
// any other driver that wants to see the state of the lines.
//
// Both lines are active low and wired-OR: a line is asserted while at least
// one source is pulling it low. Each source is given a Pin with NewPin(),
// which implements the interrupts.Line interface.
//
//	lines := cpu.NewLines()
//	irq := lines.NewPin(cpu.IRQ, "cia1")
//	nmi := lines.NewPin(cpu.NMI, "cia2")
//
// The IRQ line is level sensitive and the IRQ() function reports the current
// state of the line. The NMI line is edge sensitive. An assertion of the
// line when it was previously released is latched until AcknowledgeNMI() is
// called, even if the line has been released in the meantime.
package cpu

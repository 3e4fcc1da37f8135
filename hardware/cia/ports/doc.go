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

// Package ports implements the peripheral interface of the CIA. Two 8 bit
// ports, A and B, with per-bit direction control and the three control pins:
// FLAG (input only), CNT and SP.
//
// Values driven by attached peripherals are supplied through the Drive()
// function. The value seen by the CPU when reading a port is the output latch
// for bits configured as output and the driven value for bits configured as
// input.
//
// Peripherals that need to know when the output of the CIA changes should
// implement the Monitor interface and be attached with AttachMonitor().
package ports

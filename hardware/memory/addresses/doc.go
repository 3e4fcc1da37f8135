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

// Package addresses contains all information about CIA addresses and
// registers, including canonical symbols for the registers of both chips.
//
// In addition to the canonical symbol maps, the Symbols and Addresses maps
// are created at run time. They allow a register to be found by symbol (for
// example, by the macro package) and a symbol to be found by address.
package addresses

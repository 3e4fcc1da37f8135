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

// Package delay implements the delay pipeline shared by the sub-systems of a
// CIA chip.
//
// The pipeline is a 64 bit field divided into named groups of bits. Each
// group represents one kind of action (counting, reloading a timer, setting
// the interrupt flag, etc.) and each bit in the group represents one stage of
// propagation delay. Stage 0 is the stage into which an action is placed with
// Set(), higher stages are reached by calling Step() once per cycle.
//
//	CountA0 -> CountA1 -> CountA2 -> CountA3
//
// Actions that must happen every cycle, for example the counting of a running
// timer, are placed in the Feed. The feed is OR'd into stage 0 of the
// pipeline on every Step().
//
// Stage 0 bits are never the result of a shift. The last stage of a group
// shifts out of the group and is discarded.
package delay

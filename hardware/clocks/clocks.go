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

// Package clocks defines the constant values that define the speed of the
// system clock in the C64, which is the clock that the CIAs are stepped by.
//
// The frequency of the mains supply, used to drive the TOD clocks, is also
// defined for each TV standard.
package clocks

// System clock frequencies in Hz.
const (
	PAL  = 985248
	NTSC = 1022727
)

// Mains frequencies in Hz.
const (
	PALMains  = 50
	NTSCMains = 60
)

// Lookup returns the system clock and mains frequency for the named TV
// standard. The name is case sensitive and is either "PAL" or "NTSC".
func Lookup(standard string) (clock int, mains int, ok bool) {
	switch standard {
	case "PAL":
		return PAL, PALMains, true
	case "NTSC":
		return NTSC, NTSCMains, true
	}
	return 0, 0, false
}

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

package addresses

import (
	"fmt"
	"strings"
)

// Register offsets within a CIA. Offsets beyond CRB mirror the sixteen
// registers.
const (
	PRA uint8 = iota
	PRB
	DDRA
	DDRB
	TALO
	TAHI
	TBLO
	TBHI
	TOD10TH
	TODSEC
	TODMIN
	TODHR
	SDR
	ICR
	CRA
	CRB
)

// NumRegisters is the number of registers in a CIA.
const NumRegisters = 16

// RegisterMask reduces an offset to one of the sixteen registers.
const RegisterMask = 0x0f

// Address windows of the two CIAs.
const (
	CIA1Origin = uint16(0xdc00)
	CIA2Origin = uint16(0xdd00)
	WindowSize = uint16(0x0100)
)

// Canonical names of the registers by offset.
var Registers = [NumRegisters]string{
	"PRA", "PRB", "DDRA", "DDRB",
	"TALO", "TAHI", "TBLO", "TBHI",
	"TOD10TH", "TODSEC", "TODMIN", "TODHR",
	"SDR", "ICR", "CRA", "CRB",
}

// Symbols maps canonical register symbols to addresses. The symbols are of
// the form "CIA1.CRA".
var Symbols map[string]uint16

// Addresses maps every address in the two windows to the canonical symbol of
// the register it is mirrored to.
var Addresses map[uint16]string

func init() {
	Symbols = make(map[string]uint16)
	Addresses = make(map[uint16]string)

	for i, origin := range []uint16{CIA1Origin, CIA2Origin} {
		for reg, name := range Registers {
			s := fmt.Sprintf("CIA%d.%s", i+1, name)
			Symbols[s] = origin + uint16(reg)
		}
		for a := uint16(0); a < WindowSize; a++ {
			Addresses[origin+a] = fmt.Sprintf("CIA%d.%s", i+1, Registers[a&RegisterMask])
		}
	}
}

// Lookup returns the address of a canonical symbol. The match is case
// insensitive.
func Lookup(symbol string) (uint16, bool) {
	a, ok := Symbols[strings.ToUpper(strings.TrimSpace(symbol))]
	return a, ok
}

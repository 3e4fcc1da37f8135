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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gopher6526/hardware/memory/addresses"
	"github.com/jetsetilly/gopher6526/hardware/memory/bus"
)

// Registers is an implementation of the Digest interface. It generates a SHA-1
// value of the CIA registers every cycle, chained with the value from the
// previous cycle. It implements the hardware.Peripheral interface and should
// be attached to the machine.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
type Registers struct {
	mem    bus.DebuggerBus
	digest [sha1.Size]byte
	data   []byte
}

var origins = []uint16{addresses.CIA1Origin, addresses.CIA2Origin}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters(mem bus.DebuggerBus) *Registers {
	return &Registers{
		mem:  mem,
		data: make([]byte, sha1.Size+len(origins)*addresses.NumRegisters),
	}
}

// Hash implements digest.Digest interface.
func (dig *Registers) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Registers) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// Step implements the hardware.Peripheral interface.
func (dig *Registers) Step() {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the register data
	n := copy(dig.data, dig.digest[:])

	for _, o := range origins {
		for r := uint16(0); r < addresses.NumRegisters; r++ {
			// addresses are always mapped so the error can be ignored
			dig.data[n], _ = dig.mem.Peek(o + r)
			n++
		}
	}

	dig.digest = sha1.Sum(dig.data)
}

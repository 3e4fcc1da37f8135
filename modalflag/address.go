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

package modalflag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/hardware/memory/addresses"
)

// addressValue implements the flag.Value interface.
type addressValue struct {
	address uint16
}

func (a *addressValue) String() string {
	if a == nil {
		return ""
	}
	if s, ok := addresses.Addresses[a.address]; ok {
		return s
	}
	return fmt.Sprintf("%#04x", a.address)
}

func (a *addressValue) Set(s string) error {
	if v, ok := addresses.Lookup(s); ok {
		a.address = v
		return nil
	}

	n := s
	base := 10
	switch {
	case strings.HasPrefix(n, "$"):
		n = n[1:]
		base = 16
	case strings.HasPrefix(strings.ToLower(n), "0x"):
		n = n[2:]
		base = 16
	}

	v, err := strconv.ParseUint(n, base, 16)
	if err != nil {
		return curated.Errorf(UnknownAddress, s)
	}
	a.address = uint16(v)
	return nil
}

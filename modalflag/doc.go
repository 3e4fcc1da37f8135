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

// Package modalflag wraps the flag package of the standard library. It adds
// program modes (and sub-modes) to the command line, each mode with its own
// set of flags.
//
// Arguments are given once with NewArgs() and then Parse() is called for each
// layer of modes. For example:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "STEP", "SCRIPT")
//	p, err := md.Parse()
//	if p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "STEP":
//		md.NewMode()
//		cycles := md.AddUint64("cycles", 0, "stop after number of cycles")
//		watch := md.AddAddress("watch", 0, "register to print every step")
//		_, _ = md.Parse()
//	}
//
// The first sub-mode named is the default mode. Sub-mode comparisons are case
// insensitive.
//
// AddAddress() accepts register symbols as well as numeric addresses. Symbols
// are resolved with the addresses package, so "CIA1.ICR", "$dc0d" and "0xdc0d"
// all describe the same register.
package modalflag

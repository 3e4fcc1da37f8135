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

package macro

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/input"
	"github.com/jetsetilly/gopher6526/hardware/memory/addresses"
	"github.com/jetsetilly/gopher6526/logger"
)

// Sentinal error patterns.
const (
	ScriptError  = "macro: %s: %d: %v"
	ExpectFailed = "expected %#02x but got %#02x from %s"
	NotAMacro    = "macro: %s: not a macro file"
)

// Macro is a type that allows control of an emulation from a series of
// instructions.
type Macro struct {
	m      *hardware.Machine
	output io.Writer

	filename     string
	instructions []string

	// OnStep is called after every cycle stepped by the STEP instruction. An
	// error returned by OnStep terminates the macro.
	OnStep func() error
}

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

const headerID = "gopher6526macro"

// NewMacro is the preferred method of initialisation for the Macro type. The
// output of the READ, PEEK and LINES instructions is written to output, which
// can be nil.
func NewMacro(filename string, m *hardware.Machine, output io.Writer) (*Macro, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}
	defer f.Close()

	return NewMacroFromReader(filename, f, m, output)
}

// NewMacroFromReader is the same as NewMacro except that the script is read
// from an io.Reader. The name is used in error messages.
func NewMacroFromReader(name string, r io.Reader, m *hardware.Machine, output io.Writer) (*Macro, error) {
	if output == nil {
		output = io.Discard
	}

	mcr := &Macro{
		m:        m,
		output:   output,
		filename: name,
	}

	buffer, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}

	// convert file contents to an array of lines
	mcr.instructions = strings.Split(string(buffer), "\n")
	if len(mcr.instructions) < headerNumLines {
		return nil, curated.Errorf(NotAMacro, name)
	}
	if strings.TrimSpace(mcr.instructions[headerLineID]) != headerID {
		return nil, curated.Errorf(NotAMacro, name)
	}

	// ignore version string for now

	// we no longer need the header
	mcr.instructions = mcr.instructions[headerNumLines:]

	return mcr, nil
}

func convertNumber(s string, bitSize int) (uint64, error) {
	// convert hex indicator to one that ParseUint can deal with
	if strings.HasPrefix(s, "$") {
		s = fmt.Sprintf("0x%s", s[1:])
	}
	return strconv.ParseUint(s, 0, bitSize)
}

func convertAddress(s string) (uint16, error) {
	if a, ok := addresses.Lookup(s); ok {
		return a, nil
	}
	a, err := convertNumber(s, 16)
	if err != nil {
		return 0, fmt.Errorf("unrecognised address: %s", s)
	}
	return uint16(a), nil
}

func convertPort(s string) (ports.PortID, error) {
	switch strings.ToUpper(s) {
	case "PA":
		return ports.PortA, nil
	case "PB":
		return ports.PortB, nil
	case "FLAG":
		return ports.Flag, nil
	case "CNT":
		return ports.CNT, nil
	case "SP":
		return ports.SP, nil
	}
	return 0, fmt.Errorf("unrecognised port: %s", s)
}

type loop struct {
	line int

	// loop counters count upwards because it is more natural when
	// referencing the counter value to think of the counter as counting
	// upwards
	count    int
	countEnd int

	// if loop counter has been named then we need to know it so that we can
	// update the entry in the variables table
	countName string
}

// Run a macro to completion.
func (mcr *Macro) Run() error {
	var loops []loop
	variables := make(map[string]int)

	fail := func(ln int, err error) error {
		err = curated.Errorf(ScriptError, mcr.filename, ln+headerNumLines+1, err)
		logger.Log(mcr.m.Env, "macro", err.Error())
		return err
	}

	convertValue := func(s string) (uint8, error) {
		if strings.HasPrefix(s, "%") {
			v, ok := variables[s[1:]]
			if !ok {
				return 0, fmt.Errorf("variable '%s' does not exist", s[1:])
			}
			return uint8(v), nil
		}
		v, err := convertNumber(s, 8)
		if err != nil {
			return 0, fmt.Errorf("unrecognised value: %s", s)
		}
		return uint8(v), nil
	}

	args := func(toks []string, n int) error {
		if len(toks)-1 < n {
			return fmt.Errorf("not enough arguments for %s", toks[0])
		}
		if len(toks)-1 > n {
			return fmt.Errorf("too many arguments for %s", toks[0])
		}
		return nil
	}

	for ln := 0; ln < len(mcr.instructions); ln++ {
		toks := strings.Fields(mcr.instructions[ln])
		if len(toks) == 0 {
			continue // for loop
		}

		switch strings.ToUpper(toks[0]) {
		default:
			return fail(ln, fmt.Errorf("unrecognised command: %s", toks[0]))

		case "--":
			// ignore comment lines

		case "DO":
			tl := len(toks)
			switch tl {
			case 1:
				return fail(ln, fmt.Errorf("too few arguments for DO"))
			case 2, 3:
				ct, err := strconv.Atoi(toks[1])
				if err != nil {
					return fail(ln, err)
				}
				lp := loop{
					line:     ln,
					countEnd: ct,
				}
				if tl == 3 {
					lp.countName = toks[2]
					variables[lp.countName] = lp.count
				}
				loops = append(loops, lp)
			default:
				return fail(ln, fmt.Errorf("too many arguments for DO"))
			}

		case "LOOP":
			if err := args(toks, 0); err != nil {
				return fail(ln, err)
			}

			idx := len(loops) - 1
			if idx == -1 {
				return fail(ln, fmt.Errorf("LOOP without a DO"))
			}

			lp := &loops[idx]
			lp.count++

			if lp.count < lp.countEnd {
				// loop is ongoing so return to start of loop
				ln = lp.line

				// update named variable
				if lp.countName != "" {
					variables[lp.countName] = lp.count
				}
			} else {
				// loop has ended. remove from loop stack and delete variable name
				loops = loops[:idx]
				delete(variables, lp.countName)
			}

		case "STEP":
			n := 1
			switch len(toks) {
			case 1:
			case 2:
				var err error
				n, err = strconv.Atoi(toks[1])
				if err != nil {
					return fail(ln, err)
				}
			default:
				return fail(ln, fmt.Errorf("too many arguments for STEP"))
			}

			for i := 0; i < n; i++ {
				if err := mcr.m.Step(); err != nil {
					return fail(ln, err)
				}
				if mcr.OnStep != nil {
					if err := mcr.OnStep(); err != nil {
						return fail(ln, err)
					}
				}
			}

		case "POKE":
			if err := args(toks, 2); err != nil {
				return fail(ln, err)
			}
			addr, err := convertAddress(toks[1])
			if err != nil {
				return fail(ln, err)
			}
			val, err := convertValue(toks[2])
			if err != nil {
				return fail(ln, err)
			}
			if err := mcr.m.Poke(addr, val); err != nil {
				return fail(ln, err)
			}

		case "READ", "PEEK":
			if err := args(toks, 1); err != nil {
				return fail(ln, err)
			}
			addr, err := convertAddress(toks[1])
			if err != nil {
				return fail(ln, err)
			}

			var v uint8
			if strings.ToUpper(toks[0]) == "READ" {
				v, err = mcr.m.Read(addr)
			} else {
				v, err = mcr.m.Peek(addr)
			}
			if err != nil {
				return fail(ln, err)
			}
			fmt.Fprintf(mcr.output, "%d: %s (%#04x) = %#02x\n", mcr.m.Cycle(), addresses.Addresses[addr], addr, v)

		case "EXPECT":
			if err := args(toks, 2); err != nil {
				return fail(ln, err)
			}
			val, err := convertValue(toks[2])
			if err != nil {
				return fail(ln, err)
			}

			var v uint8
			switch strings.ToUpper(toks[1]) {
			case "IRQ":
				if mcr.m.Lines.IRQ() {
					v = 1
				}
			case "NMI":
				if mcr.m.Lines.NMI() {
					v = 1
				}
			default:
				addr, err := convertAddress(toks[1])
				if err != nil {
					return fail(ln, err)
				}
				v, err = mcr.m.Peek(addr)
				if err != nil {
					return fail(ln, err)
				}
			}

			if v != val {
				return fail(ln, curated.Errorf(ExpectFailed, val, v, toks[1]))
			}

		case "DRIVE":
			if err := args(toks, 4); err != nil {
				return fail(ln, err)
			}
			chip, err := strconv.Atoi(toks[1])
			if err != nil {
				return fail(ln, err)
			}
			port, err := convertPort(toks[2])
			if err != nil {
				return fail(ln, err)
			}
			mask, err := convertValue(toks[3])
			if err != nil {
				return fail(ln, err)
			}
			val, err := convertValue(toks[4])
			if err != nil {
				return fail(ln, err)
			}
			ev := input.Event{Chip: chip, Port: port, Mask: mask, Value: val}
			if _, err := mcr.m.Input.HandleEvent(ev); err != nil {
				return fail(ln, err)
			}

		case "FLAG":
			if err := args(toks, 1); err != nil {
				return fail(ln, err)
			}
			chip, err := strconv.Atoi(toks[1])
			if err != nil {
				return fail(ln, err)
			}
			for _, v := range []uint8{0x00, 0x01} {
				ev := input.Event{Chip: chip, Port: ports.Flag, Mask: 0x01, Value: v}
				if _, err := mcr.m.Input.HandleEvent(ev); err != nil {
					return fail(ln, err)
				}
			}

		case "LINES":
			if err := args(toks, 0); err != nil {
				return fail(ln, err)
			}
			fmt.Fprintf(mcr.output, "%d: %s\n", mcr.m.Cycle(), mcr.m.Lines)

		case "RESET":
			if err := args(toks, 0); err != nil {
				return fail(ln, err)
			}
			mcr.m.Reset()

		case "QUIT":
			if err := args(toks, 0); err != nil {
				return fail(ln, err)
			}
			return nil
		}
	}

	if len(loops) > 0 {
		return fail(len(mcr.instructions)-1, fmt.Errorf("DO without a LOOP"))
	}

	return nil
}

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

package macro_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/macro"
	"github.com/jetsetilly/gopher6526/test"
)

func run(t *testing.T, script string) (*hardware.Machine, string, error) {
	t.Helper()
	m := hardware.NewMachine(environment.NewEnvironment(environment.MainEmulation, nil))
	out := &strings.Builder{}
	mcr, err := macro.NewMacroFromReader("test", strings.NewReader(script), m, out)
	test.DemandSuccess(t, err)
	err = mcr.Run()
	return m, out.String(), err
}

func TestStartDelay(t *testing.T) {
	_, _, err := run(t, `gopher6526macro
v1
-- timer A one-shot with a latch of one
POKE CIA1.ICR $81
POKE CIA1.TALO 1
POKE CIA1.TAHI 0
STEP
POKE CIA1.CRA $09
STEP
EXPECT IRQ 0
STEP
EXPECT IRQ 0
STEP
EXPECT IRQ 1
EXPECT CIA1.ICR $81
EXPECT CIA1.CRA $08
`)
	test.ExpectSuccess(t, err)
}

func TestReadOutput(t *testing.T) {
	m, out, err := run(t, `gopher6526macro
v1
POKE $dd02 $0f
STEP 5
PEEK $dd02
READ 0xdd42
LINES
`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.Cycle(), uint64(5))
	test.ExpectSuccess(t, strings.Contains(out, "5: CIA2.DDRA (0xdd02) = 0x0f"))
	test.ExpectSuccess(t, strings.Contains(out, "5: CIA2.DDRA (0xdd42) = 0x0f"))
	test.ExpectSuccess(t, strings.Contains(out, "IRQ=false NMI=false"))
}

func TestLoops(t *testing.T) {
	m, _, err := run(t, `gopher6526macro
v1
DO 3 a
  DO 2
    STEP
  LOOP
  POKE CIA1.TBLO %a
LOOP
EXPECT CIA1.TBLO 0xff
POKE CIA1.TBHI 0
STEP
EXPECT CIA1.TBLO 2
`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.Cycle(), uint64(7))
}

func TestFlag(t *testing.T) {
	_, _, err := run(t, `gopher6526macro
v1
POKE CIA2.ICR $90
FLAG 2
EXPECT NMI 1
EXPECT CIA2.ICR $90
READ CIA2.ICR
EXPECT NMI 0
DRIVE 1 PA $ff $0f
EXPECT CIA1.PRA $0f
`)
	test.ExpectSuccess(t, err)
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, `gopher6526macro
v1
EXPECT CIA1.CRA 1
`)
	test.ExpectSuccess(t, curated.Is(err, macro.ScriptError))
	test.ExpectSuccess(t, curated.Has(err, macro.ExpectFailed))

	_, _, err = run(t, "gopher6526macro\nv1\nPOKE $d000 0\n")
	test.ExpectSuccess(t, curated.Has(err, hardware.UnmappedAddress))

	_, _, err = run(t, "gopher6526macro\nv1\nLOOP\n")
	test.ExpectFailure(t, err)

	_, _, err = run(t, "gopher6526macro\nv1\nDO 2\nSTEP\n")
	test.ExpectFailure(t, err)

	_, _, err = run(t, "gopher6526macro\nv1\nPOKE CIA1.TALO %x\n")
	test.ExpectFailure(t, err)

	_, _, err = run(t, "gopher6526macro\nv1\nJUMP\n")
	test.ExpectFailure(t, err)

	_, _, err = run(t, "gopher6526macro\nv1\nQUIT\nJUMP\n")
	test.ExpectSuccess(t, err)
}

func TestFile(t *testing.T) {
	m := hardware.NewMachine(environment.NewEnvironment(environment.MainEmulation, nil))

	pth := filepath.Join(t.TempDir(), "script")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("not a macro\n"), 0o600))
	_, err := macro.NewMacro(pth, m, nil)
	test.ExpectSuccess(t, curated.Is(err, macro.NotAMacro))

	test.DemandSuccess(t, os.WriteFile(pth, []byte("gopher6526macro\nv1\nSTEP 2\n"), 0o600))
	mcr, err := macro.NewMacro(pth, m, nil)
	test.DemandSuccess(t, err)

	steps := 0
	mcr.OnStep = func() error {
		steps++
		return nil
	}
	test.ExpectSuccess(t, mcr.Run())
	test.ExpectEquality(t, steps, 2)
}

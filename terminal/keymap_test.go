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

package terminal_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/terminal"
	"github.com/jetsetilly/gopher6526/test"
)

func TestKeymapCommands(t *testing.T) {
	km := terminal.NewKeymap()
	test.ExpectEquality(t, km.Translate(' ').Command, terminal.StepCycle)
	test.ExpectEquality(t, km.Translate('r').Command, terminal.ToggleRun)
	test.ExpectEquality(t, km.Translate('s').Command, terminal.Status)
	test.ExpectEquality(t, km.Translate('q').Command, terminal.Quit)
	test.ExpectEquality(t, km.Translate('?').Command, terminal.NoCommand)
	test.ExpectSuccess(t, strings.Contains(km.Help(), "run/pause"))
}

func TestKeymapPortBits(t *testing.T) {
	km := terminal.NewKeymap()
	test.ExpectEquality(t, km.Port(), uint8(0xff))

	a := km.Translate('3')
	test.ExpectEquality(t, a.Command, terminal.DriveInput)
	test.DemandEquality(t, len(a.Events), 1)
	test.ExpectEquality(t, a.Events[0].Port, ports.PortA)
	test.ExpectEquality(t, a.Events[0].Mask, uint8(0x04))
	test.ExpectEquality(t, a.Events[0].Value, uint8(0x00))
	test.ExpectEquality(t, km.Port(), uint8(0xfb))

	a = km.Translate('3')
	test.ExpectEquality(t, a.Events[0].Value, uint8(0x04))
	test.ExpectEquality(t, km.Port(), uint8(0xff))

	km.Translate('8')
	test.ExpectEquality(t, km.Port(), uint8(0x7f))
	test.ExpectEquality(t, km.Translate('x').Command, terminal.Reset)
	test.ExpectEquality(t, km.Port(), uint8(0xff))
}

func TestKeymapFlag(t *testing.T) {
	m := hardware.NewMachine(environment.NewEnvironment(environment.MainEmulation, nil))
	m.Reset()

	// enable the FLAG interrupt
	test.DemandSuccess(t, m.Write(0xdc0d, 0x90))

	km := terminal.NewKeymap()
	a := km.Translate('f')
	test.ExpectEquality(t, a.Command, terminal.Flag)
	for _, ev := range a.Events {
		test.DemandSuccess(t, m.Input.PushEvent(ev))
	}

	test.DemandSuccess(t, m.Step())
	v, err := m.Peek(0xdc0d)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v&0x10, uint8(0x10))
}

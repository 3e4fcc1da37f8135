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

package hardware_test

import (
	"testing"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/govern"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/input"
	"github.com/jetsetilly/gopher6526/hardware/memory/bus"
	"github.com/jetsetilly/gopher6526/test"
)

func newMachine() *hardware.Machine {
	return hardware.NewMachine(environment.NewEnvironment(environment.MainEmulation, nil))
}

// start timer A of the chip at origin in one-shot mode, with the interrupt
// enabled and a latch of one.
func startOneShot(t *testing.T, m *hardware.Machine, origin uint16) {
	t.Helper()
	test.DemandSuccess(t, m.Write(origin+0x0d, 0x81))
	test.DemandSuccess(t, m.Write(origin+0x04, 0x01))
	test.DemandSuccess(t, m.Write(origin+0x05, 0x00))
	test.DemandSuccess(t, m.Step())
	test.DemandSuccess(t, m.Write(origin+0x0e, 0x09))
}

func TestBusInterfaces(t *testing.T) {
	m := newMachine()
	test.DemandImplements[bus.CPUBus](t, m)
	test.DemandImplements[bus.DebuggerBus](t, m)
	test.DemandImplements[input.Target](t, m)
}

func TestUnmapped(t *testing.T) {
	m := newMachine()

	_, err := m.Read(0xd000)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnmappedAddress))

	err = m.Write(0xde00, 0x00)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnmappedAddress))

	_, err = m.Peek(0xdbff)
	test.ExpectFailure(t, err)

	_, err = m.Chip(3)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnknownChip))
}

func TestWindows(t *testing.T) {
	m := newMachine()

	test.ExpectSuccess(t, m.Write(0xdc02, 0x0f))
	test.ExpectEquality(t, m.CIA1.Ports.ReadDDR(ports.PortA), uint8(0x0f))
	test.ExpectEquality(t, m.CIA2.Ports.ReadDDR(ports.PortA), uint8(0x00))

	// mirrored registers
	test.ExpectSuccess(t, m.Poke(0xdd42, 0xf0))
	test.ExpectEquality(t, m.CIA2.Ports.ReadDDR(ports.PortA), uint8(0xf0))
	v, err := m.Peek(0xddf2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xf0))
}

func TestIdentity(t *testing.T) {
	m := newMachine()

	startOneShot(t, m, 0xdc00)
	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, m.Step())
	}
	test.ExpectSuccess(t, m.Lines.IRQ())
	test.ExpectFailure(t, m.Lines.NMI())

	v, err := m.Read(0xdc0d)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x81))
	test.ExpectFailure(t, m.Lines.IRQ())

	startOneShot(t, m, 0xdd00)
	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, m.Step())
	}
	test.ExpectFailure(t, m.Lines.IRQ())
	test.ExpectSuccess(t, m.Lines.NMI())
	test.ExpectSuccess(t, m.Lines.AcknowledgeNMI())
}

type counter struct {
	steps int
}

func (c *counter) Step() {
	c.steps++
}

func TestRun(t *testing.T) {
	m := newMachine()
	c := &counter{}
	m.AttachPeripheral(c)
	m.AttachPeripheral(c)

	test.ExpectSuccess(t, m.RunForCycles(100, nil))
	test.ExpectEquality(t, m.Cycle(), uint64(100))
	test.ExpectEquality(t, c.steps, 100)

	m.DetachPeripheral(c)
	n := 0
	err := m.Run(func() (govern.State, error) {
		n++
		if n >= 50 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.Cycle(), uint64(150))
	test.ExpectEquality(t, c.steps, 100)

	m.Reset()
	test.ExpectEquality(t, m.Cycle(), uint64(0))
}

func TestPushedInput(t *testing.T) {
	m := newMachine()
	test.DemandSuccess(t, m.Write(0xdc0d, 0x90))

	ev := input.Event{Chip: 1, Port: ports.Flag, Mask: 0x01, Value: 0x00}
	test.DemandSuccess(t, m.Input.PushEvent(ev))
	test.ExpectFailure(t, m.Lines.IRQ())

	test.DemandSuccess(t, m.Step())
	test.ExpectSuccess(t, m.Lines.IRQ())

	test.ExpectFailure(t, m.Drive(input.Event{Chip: 0}))
}

func TestSnapshot(t *testing.T) {
	m := newMachine()
	test.DemandSuccess(t, m.Write(0xdc04, 0x00))
	test.DemandSuccess(t, m.Write(0xdc05, 0x10))
	test.DemandSuccess(t, m.Write(0xdc0e, 0x01))
	test.DemandSuccess(t, m.RunForCycles(10, nil))

	s := m.Snapshot()
	test.DemandSuccess(t, m.RunForCycles(10, nil))
	lo, _ := m.Peek(0xdc04)

	m.Plumb(s)
	test.ExpectEquality(t, m.Cycle(), uint64(10))
	test.DemandSuccess(t, m.RunForCycles(10, nil))
	v, _ := m.Peek(0xdc04)
	test.ExpectEquality(t, v, lo)

	// the stored state is not changed by running the plumbed machine
	test.ExpectEquality(t, s.Cycle, uint64(10))
	test.ExpectEquality(t, s.CIA1.Timers.A.Counter, m.CIA1.Timers.A.Counter+10)
}

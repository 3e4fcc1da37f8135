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

package hardware

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware/cia"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/cpu"
	"github.com/jetsetilly/gopher6526/hardware/input"
	"github.com/jetsetilly/gopher6526/hardware/memory/addresses"
)

// Sentinal error patterns.
const (
	UnmappedAddress = "machine: unmapped address (%#04x)"
	UnknownChip     = "machine: unknown chip (%d)"
)

// Peripheral implementations are stepped once per cycle, before the CIAs.
type Peripheral interface {
	Step()
}

// Machine is the main container for the emulated components.
type Machine struct {
	Env *environment.Environment

	// the interrupt lines of the CPU
	Lines *cpu.Lines
	irq   *cpu.Pin
	nmi   *cpu.Pin

	CIA1 *cia.CIA
	CIA2 *cia.CIA

	Input *input.Input

	peripherals []Peripheral

	// port monitors for each chip. reattached when a new state is plumbed in
	monitors [2]ports.Monitor

	cycle uint64
}

// NewMachine creates a new Machine and everything associated with the
// hardware.
func NewMachine(env *environment.Environment) *Machine {
	m := &Machine{
		Env:   env,
		Lines: cpu.NewLines(),
	}

	m.irq = m.Lines.NewPin(cpu.IRQ, "cia1")
	m.nmi = m.Lines.NewPin(cpu.NMI, "cia2")

	m.CIA1 = cia.NewCIA(env, "cia1", m.irq)
	m.CIA2 = cia.NewCIA(env, "cia2", m.nmi)

	m.Input = input.NewInput(m)

	return m
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("cycle %d: %s\n", m.cycle, m.Lines))
	s.WriteString(m.CIA1.String())
	s.WriteString("\n")
	s.WriteString(m.CIA2.String())
	return s.String()
}

// Reset the machine. Both CIAs are reset and the cycle count is set to zero.
// Preference changes affecting the chips take effect at this point.
func (m *Machine) Reset() {
	m.CIA1.Reset()
	m.CIA2.Reset()
	m.Lines.Reset()
	m.cycle = 0
}

// Cycle returns the number of cycles since the last reset. Implements the
// input.Target interface.
func (m *Machine) Cycle() uint64 {
	return m.cycle
}

// Chip returns the CIA with the number 1 or 2.
func (m *Machine) Chip(n int) (*cia.CIA, error) {
	switch n {
	case 1:
		return m.CIA1, nil
	case 2:
		return m.CIA2, nil
	}
	return nil, curated.Errorf(UnknownChip, n)
}

func (m *Machine) decode(address uint16) (*cia.CIA, uint8, error) {
	switch address &^ (addresses.WindowSize - 1) {
	case addresses.CIA1Origin:
		return m.CIA1, uint8(address), nil
	case addresses.CIA2Origin:
		return m.CIA2, uint8(address), nil
	}
	return nil, 0, curated.Errorf(UnmappedAddress, address)
}

// Read implements the bus.CPUBus interface.
func (m *Machine) Read(address uint16) (uint8, error) {
	c, reg, err := m.decode(address)
	if err != nil {
		return 0, err
	}
	return c.Read(reg), nil
}

// Write implements the bus.CPUBus interface.
func (m *Machine) Write(address uint16, data uint8) error {
	c, reg, err := m.decode(address)
	if err != nil {
		return err
	}
	c.Write(reg, data)
	return nil
}

// Peek implements the bus.DebuggerBus interface.
func (m *Machine) Peek(address uint16) (uint8, error) {
	c, reg, err := m.decode(address)
	if err != nil {
		return 0, err
	}
	return c.Peek(reg), nil
}

// Poke implements the bus.DebuggerBus interface.
func (m *Machine) Poke(address uint16, value uint8) error {
	return m.Write(address, value)
}

// Drive the pins of a CIA port. Implements the input.Target interface.
func (m *Machine) Drive(ev input.Event) error {
	c, err := m.Chip(ev.Chip)
	if err != nil {
		return err
	}
	c.Ports.Drive(ev.Port, ev.Mask, ev.Value)
	return nil
}

// AttachPeripheral adds a peripheral to the list of peripherals stepped every
// cycle. A peripheral can only be attached once.
func (m *Machine) AttachPeripheral(p Peripheral) {
	for _, q := range m.peripherals {
		if q == p {
			return
		}
	}
	m.peripherals = append(m.peripherals, p)
}

// DetachPeripheral removes a peripheral previously added with
// AttachPeripheral().
func (m *Machine) DetachPeripheral(p Peripheral) {
	for i, q := range m.peripherals {
		if q == p {
			m.peripherals = append(m.peripherals[:i], m.peripherals[i+1:]...)
			return
		}
	}
}

// AttachMonitor attaches a port monitor to the chip with the number 1 or 2. A
// nil value detaches the monitor.
func (m *Machine) AttachMonitor(chip int, mon ports.Monitor) error {
	c, err := m.Chip(chip)
	if err != nil {
		return err
	}
	m.monitors[chip-1] = mon
	c.Ports.AttachMonitor(mon)
	return nil
}

// Step the machine forward one cycle. Input is handled and peripherals are
// stepped before the CIAs.
func (m *Machine) Step() error {
	if err := m.Input.Handle(); err != nil {
		return err
	}

	for _, p := range m.peripherals {
		p.Step()
	}

	m.CIA1.Step()
	m.CIA2.Step()

	m.cycle++

	return nil
}

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

package cia

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware/cia/delay"
	"github.com/jetsetilly/gopher6526/hardware/cia/interrupts"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/cia/serial"
	"github.com/jetsetilly/gopher6526/hardware/cia/timer"
	"github.com/jetsetilly/gopher6526/hardware/cia/tod"
	"github.com/jetsetilly/gopher6526/hardware/memory/addresses"
	"github.com/jetsetilly/gopher6526/logger"
)

// bits of the control registers that are not handled by the timers.
const (
	craSerialOut = 0x40
	craTOD50Hz   = 0x80
	crbAlarm     = 0x80
)

// CIA is a single 6526 chip.
type CIA struct {
	env  *environment.Environment
	line interrupts.Line

	// label used for logging and presentation. for example "cia1"
	Label string

	Pipeline   *delay.Pipeline
	Ports      *ports.Ports
	Interrupts *interrupts.Controller
	Timers     *timer.Timers
	Serial     *serial.Serial
	TOD        *tod.TOD
}

// NewCIA is the preferred method of initialisation for the CIA type. The line
// argument is the interrupt line the chip is connected to.
func NewCIA(env *environment.Environment, label string, line interrupts.Line) *CIA {
	cia := &CIA{
		env:      env,
		line:     line,
		Label:    label,
		Pipeline: &delay.Pipeline{},
	}

	cia.Ports = ports.NewPorts(cia)
	cia.Interrupts = interrupts.NewController(line, cia.Pipeline)
	cia.Timers = timer.NewTimers(cia.Pipeline, cia.Interrupts, cia.Ports)
	cia.Serial = serial.NewSerial(cia.Pipeline, cia.Interrupts, cia.Ports)
	cia.TOD = tod.NewTOD(cia, env.Prefs.Clock.Get().(int), env.Prefs.Mains.Get().(int))

	cia.Reset()

	return cia
}

// Snapshot creates a copy of the CIA in its current state.
func (cia *CIA) Snapshot() *CIA {
	n := *cia
	pl := *cia.Pipeline
	n.Pipeline = &pl
	n.Ports = cia.Ports.Snapshot()
	n.Interrupts = cia.Interrupts.Snapshot()
	n.Timers = cia.Timers.Snapshot()
	n.Serial = cia.Serial.Snapshot()
	n.TOD = cia.TOD.Snapshot()
	return &n
}

// Plumb the environment and interrupt line into the CIA and connect the
// sub-systems to each other. Required after a snapshot has been restored.
func (cia *CIA) Plumb(env *environment.Environment, line interrupts.Line) {
	cia.env = env
	cia.line = line
	cia.Ports.Plumb(cia)
	cia.Interrupts.Plumb(line, cia.Pipeline)
	cia.Timers.Plumb(cia.Pipeline, cia.Interrupts, cia.Ports)
	cia.Serial.Plumb(cia.Pipeline, cia.Interrupts, cia.Ports)
	cia.TOD.Plumb(cia)
}

// Reset the CIA to the power-on state. The revision and frequency
// preferences are applied at this point.
func (cia *CIA) Reset() {
	cia.Pipeline.Reset()
	cia.Ports.Reset()
	cia.Interrupts.Reset()
	cia.Timers.Reset()
	cia.Serial.Reset()

	switch strings.TrimSpace(cia.env.Prefs.Revision.String()) {
	case "8521":
		cia.Interrupts.Revision = interrupts.Rev8521
	default:
		cia.Interrupts.Revision = interrupts.Rev6526
	}

	cia.TOD.SetFrequency(cia.env.Prefs.Clock.Get().(int), cia.env.Prefs.Mains.Get().(int))
	cia.TOD.Reset()
}

func (cia *CIA) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s (%s)\n", cia.Label, cia.Interrupts.Revision))
	s.WriteString(fmt.Sprintf("%s\n", cia.Ports))
	s.WriteString(fmt.Sprintf("%s\n", cia.Timers))
	s.WriteString(fmt.Sprintf("%s\n", cia.Interrupts))
	s.WriteString(fmt.Sprintf("%s\n", cia.Serial))
	s.WriteString(fmt.Sprintf("TOD %s\n", cia.TOD))
	s.WriteString(cia.Pipeline.String())
	return s.String()
}

// FlagFall implements the ports.Edges interface.
func (cia *CIA) FlagFall() {
	cia.Interrupts.Request(interrupts.Flag)
}

// CNTRise implements the ports.Edges interface.
func (cia *CIA) CNTRise() {
	cia.Timers.CNTRise()
	cia.Serial.CNTRise()
}

// AlarmMatch implements the tod.Alarm interface.
func (cia *CIA) AlarmMatch() {
	cia.Pipeline.Set(delay.TODInt0)
}

// Step the CIA forward one cycle.
func (cia *CIA) Step() {
	cia.Interrupts.Step()

	underflowA, _ := cia.Timers.Step()
	if underflowA {
		cia.Serial.TimerUnderflow()
	}
	cia.Serial.Step()

	cia.TOD.Step(cia.Timers.ReadControl(timer.A)&craTOD50Hz == craTOD50Hz)
	if cia.Pipeline.Is(delay.TODInt1) {
		cia.Interrupts.Raise(interrupts.Alarm)
	}

	cia.Pipeline.Step()
}

// Read a register with all the side effects of a CPU read. Register offsets
// are mirrored every sixteen bytes.
func (cia *CIA) Read(reg uint8) uint8 {
	reg &= addresses.RegisterMask

	switch reg {
	case addresses.TOD10TH, addresses.TODSEC, addresses.TODMIN, addresses.TODHR:
		return cia.TOD.Read(tod.Register(reg - addresses.TOD10TH))
	case addresses.ICR:
		v := cia.Interrupts.ReadStatus()
		if cia.env.Prefs.LogRegisters.Get().(bool) {
			logger.Logf(cia.env, cia.Label, "read ICR %#02x", v)
		}
		return v
	}

	return cia.Peek(reg)
}

// Peek returns the value of a register without side effects.
func (cia *CIA) Peek(reg uint8) uint8 {
	reg &= addresses.RegisterMask

	switch reg {
	case addresses.PRA:
		return cia.Ports.Read(ports.PortA)
	case addresses.PRB:
		return cia.Ports.Read(ports.PortB)
	case addresses.DDRA:
		return cia.Ports.ReadDDR(ports.PortA)
	case addresses.DDRB:
		return cia.Ports.ReadDDR(ports.PortB)
	case addresses.TALO:
		return cia.Timers.ReadCounter(timer.A, timer.Low)
	case addresses.TAHI:
		return cia.Timers.ReadCounter(timer.A, timer.High)
	case addresses.TBLO:
		return cia.Timers.ReadCounter(timer.B, timer.Low)
	case addresses.TBHI:
		return cia.Timers.ReadCounter(timer.B, timer.High)
	case addresses.TOD10TH, addresses.TODSEC, addresses.TODMIN, addresses.TODHR:
		return cia.TOD.Peek(tod.Register(reg - addresses.TOD10TH))
	case addresses.SDR:
		return cia.Serial.Read()
	case addresses.ICR:
		return cia.Interrupts.Peek()
	case addresses.CRA:
		return cia.Timers.ReadControl(timer.A)
	case addresses.CRB:
		return cia.Timers.ReadControl(timer.B)
	}

	return 0
}

// Write a register. Register offsets are mirrored every sixteen bytes.
func (cia *CIA) Write(reg uint8, data uint8) {
	reg &= addresses.RegisterMask

	switch reg {
	case addresses.ICR, addresses.CRA, addresses.CRB:
		if cia.env.Prefs.LogRegisters.Get().(bool) {
			logger.Logf(cia.env, cia.Label, "write %s %#02x", addresses.Registers[reg], data)
		}
	}

	switch reg {
	case addresses.PRA:
		cia.Ports.Write(ports.PortA, data)
	case addresses.PRB:
		cia.Ports.Write(ports.PortB, data)
	case addresses.DDRA:
		cia.Ports.WriteDDR(ports.PortA, data)
	case addresses.DDRB:
		cia.Ports.WriteDDR(ports.PortB, data)
	case addresses.TALO:
		cia.Timers.WriteLatch(timer.A, timer.Low, data)
	case addresses.TAHI:
		cia.Timers.WriteLatch(timer.A, timer.High, data)
	case addresses.TBLO:
		cia.Timers.WriteLatch(timer.B, timer.Low, data)
	case addresses.TBHI:
		cia.Timers.WriteLatch(timer.B, timer.High, data)
	case addresses.TOD10TH, addresses.TODSEC, addresses.TODMIN, addresses.TODHR:
		alarm := cia.Timers.ReadControl(timer.B)&crbAlarm == crbAlarm
		cia.TOD.Write(tod.Register(reg-addresses.TOD10TH), data, alarm)
	case addresses.SDR:
		cia.Serial.Write(data)
	case addresses.ICR:
		cia.Interrupts.WriteMask(data)
	case addresses.CRA:
		cia.Timers.WriteControl(timer.A, data)
		cia.Serial.SetDirection(data&craSerialOut == craSerialOut)
	case addresses.CRB:
		cia.Timers.WriteControl(timer.B, data)
	}
}

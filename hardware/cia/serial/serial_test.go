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

package serial_test

import (
	"testing"

	"github.com/jetsetilly/gopher6526/hardware/cia/delay"
	"github.com/jetsetilly/gopher6526/hardware/cia/interrupts"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/cia/serial"
	"github.com/jetsetilly/gopher6526/test"
)

type line struct{}

func (l *line) Assert()  {}
func (l *line) Release() {}

// records the bits shifted out on SP, sampled on the rising edge of CNT.
type receiver struct {
	prt  *ports.Ports
	bits []bool
}

func (r *receiver) PortChanged(id ports.PortID, value uint8) {
	if id == ports.CNT && value == 1 {
		r.bits = append(r.bits, r.prt.Pin(ports.SP))
	}
}

func TestOutput(t *testing.T) {
	var pl delay.Pipeline
	irq := interrupts.NewController(&line{}, &pl)
	prt := ports.NewPorts(nil)
	sr := serial.NewSerial(&pl, irq, prt)

	rcv := &receiver{prt: prt}
	prt.AttachMonitor(rcv)

	sr.SetDirection(true)
	sr.Write(0xa5)
	test.ExpectSuccess(t, sr.Loaded)

	step := func(underflow bool) {
		irq.Step()
		if underflow {
			sr.TimerUnderflow()
		}
		sr.Step()
		pl.Step()
	}

	// the shift register is loaded in the following cycle
	step(false)
	step(false)
	test.ExpectEquality(t, sr.Bits, 8)
	test.ExpectFailure(t, sr.Loaded)

	// two timer underflows per bit
	for i := 0; i < 16; i++ {
		step(true)
	}
	for i := 0; i < 6; i++ {
		step(false)
	}

	test.DemandEquality(t, len(rcv.bits), 8)
	var v uint8
	for _, b := range rcv.bits {
		v <<= 1
		if b {
			v |= 0x01
		}
	}
	test.ExpectEquality(t, v, uint8(0xa5))
	test.ExpectEquality(t, sr.Bits, 0)
	test.ExpectEquality(t, irq.Pending&uint8(interrupts.Serial), uint8(interrupts.Serial))
}

func TestInput(t *testing.T) {
	var pl delay.Pipeline
	irq := interrupts.NewController(&line{}, &pl)
	prt := ports.NewPorts(nil)
	sr := serial.NewSerial(&pl, irq, prt)

	step := func() {
		irq.Step()
		sr.Step()
		pl.Step()
	}

	for _, b := range []uint8{1, 1, 0, 0, 1, 0, 1, 0} {
		prt.Drive(ports.SP, 0x01, b)
		sr.CNTRise()
		step()
	}

	// byte arrives in SDR two cycles after the cycle of the last edge and
	// the interrupt is raised two cycles after that
	test.ExpectEquality(t, sr.Read(), uint8(0x00))
	step()
	test.ExpectEquality(t, sr.Read(), uint8(0x00))
	step()
	test.ExpectEquality(t, sr.Read(), uint8(0xca))
	test.ExpectEquality(t, irq.Pending, uint8(0x00))
	step()
	test.ExpectEquality(t, irq.Pending, uint8(0x00))
	step()
	test.ExpectEquality(t, irq.Pending, uint8(interrupts.Serial))
}

func TestWriteInputMode(t *testing.T) {
	var pl delay.Pipeline
	irq := interrupts.NewController(&line{}, &pl)
	sr := serial.NewSerial(&pl, irq, ports.NewPorts(nil))

	// writing in input mode only changes the data register
	sr.Write(0x42)
	test.ExpectEquality(t, sr.Read(), uint8(0x42))
	test.ExpectFailure(t, sr.Loaded)
	test.ExpectFailure(t, pl.Is(delay.SerLoad0))
}

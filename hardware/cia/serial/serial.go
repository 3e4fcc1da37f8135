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

// Package serial implements the serial shift register of the CIA.
//
// In output mode the shift register is clocked by timer A. Every underflow of
// timer A toggles the CNT pin and a bit is shifted out of SP on every second
// toggle, most significant bit first. In input mode a bit is sampled from SP
// on every rising edge of CNT.
//
// After eight bits the serial interrupt is raised.
package serial

import (
	"fmt"

	"github.com/jetsetilly/gopher6526/hardware/cia/delay"
	"github.com/jetsetilly/gopher6526/hardware/cia/interrupts"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
)

// Serial is the serial shift register.
type Serial struct {
	pl    *delay.Pipeline
	irq   *interrupts.Controller
	ports *ports.Ports

	// the serial data register as seen by the CPU
	SDR uint8

	// the shift register
	Shift uint8

	// in output mode the number of bits still to be shifted out. in input
	// mode the number of bits shifted in
	Bits int

	// SDR has been written in output mode but has not yet been transferred
	// to the shift register
	Loaded bool

	// output mode. set by bit 6 of control register A
	Output bool

	// level of CNT while shifting out
	clk bool
}

// NewSerial is the preferred method of initialisation for the Serial type.
func NewSerial(pl *delay.Pipeline, irq *interrupts.Controller, prt *ports.Ports) *Serial {
	sr := &Serial{
		pl:    pl,
		irq:   irq,
		ports: prt,
	}
	sr.Reset()
	return sr
}

// Snapshot returns a copy of the shift register in its current state.
func (sr *Serial) Snapshot() *Serial {
	n := *sr
	return &n
}

// Plumb new collaborators into the shift register. Required after a snapshot
// has been restored.
func (sr *Serial) Plumb(pl *delay.Pipeline, irq *interrupts.Controller, prt *ports.Ports) {
	sr.pl = pl
	sr.irq = irq
	sr.ports = prt
}

// Reset the shift register. Input mode is selected.
func (sr *Serial) Reset() {
	sr.SDR = 0
	sr.Shift = 0
	sr.Bits = 0
	sr.Loaded = false
	sr.Output = false
	sr.clk = true
	sr.pl.Clear(delay.SerInt0 | delay.SerInt1 | delay.SerInt2 |
		delay.SerLoad0 | delay.SerLoad1 |
		delay.SerClk0 | delay.SerClk1 | delay.SerClk2 | delay.SerClk3 |
		delay.Cnt0 | delay.Cnt1 | delay.Cnt2)
}

func (sr *Serial) String() string {
	dir := "in"
	if sr.Output {
		dir = "out"
	}
	return fmt.Sprintf("SDR=%#02x shift=%#02x bits=%d %s", sr.SDR, sr.Shift, sr.Bits, dir)
}

// SetDirection selects output mode (true) or input mode. Changing direction
// abandons any transfer in progress.
func (sr *Serial) SetDirection(output bool) {
	if output == sr.Output {
		return
	}
	sr.Output = output
	sr.Bits = 0
	sr.Loaded = false
	sr.pl.Clear(delay.SerLoad0 | delay.SerLoad1 | delay.SerClk0 | delay.SerClk1 | delay.SerClk2 | delay.SerClk3)

	if output {
		sr.clk = true
		sr.ports.SetOutputPin(ports.CNT, true)
	}
}

// Read the serial data register.
func (sr *Serial) Read() uint8 {
	return sr.SDR
}

// Write the serial data register. In output mode the value is transferred to
// the shift register when the shift register is empty.
func (sr *Serial) Write(data uint8) {
	sr.SDR = data
	if !sr.Output {
		return
	}
	sr.Loaded = true
	if sr.Bits == 0 && !sr.pl.Is(delay.SerLoad0|delay.SerLoad1) {
		sr.pl.Set(delay.SerLoad0)
	}
}

// TimerUnderflow should be called when timer A underflows.
func (sr *Serial) TimerUnderflow() {
	if sr.Output && sr.Bits > 0 {
		sr.pl.Set(delay.SerClk0)
	}
}

// CNTRise should be called on a rising edge of the CNT pin.
func (sr *Serial) CNTRise() {
	if sr.Output {
		return
	}

	sr.Shift <<= 1
	if sr.ports.Pin(ports.SP) {
		sr.Shift |= 0x01
	}
	sr.Bits++

	if sr.Bits == 8 {
		sr.Bits = 0
		sr.pl.Set(delay.Cnt0)
	}
}

// Step the shift register forward one cycle. Must be called after the timers
// have been stepped and before the pipeline is stepped.
func (sr *Serial) Step() {
	if sr.pl.Is(delay.SerLoad1) {
		sr.Shift = sr.SDR
		sr.Bits = 8
		sr.Loaded = false
	}

	if sr.pl.Is(delay.SerClk2) && sr.Output && sr.Bits > 0 {
		sr.clk = !sr.clk
		if !sr.clk {
			sr.ports.SetOutputPin(ports.SP, sr.Shift&0x80 == 0x80)
		}
		sr.ports.SetOutputPin(ports.CNT, sr.clk)

		if sr.clk {
			sr.Shift <<= 1
			sr.Bits--
			if sr.Bits == 0 {
				sr.pl.Set(delay.SerInt0)
				if sr.Loaded {
					sr.pl.Set(delay.SerLoad0)
				}
			}
		}
	}

	// input byte complete
	if sr.pl.Is(delay.Cnt2) {
		sr.SDR = sr.Shift
		sr.pl.Set(delay.SerInt0)
	}

	if sr.pl.Is(delay.SerInt2) {
		sr.irq.Raise(interrupts.Serial)
	}
}

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

package timer

import (
	"fmt"

	"github.com/jetsetilly/gopher6526/hardware/cia/delay"
	"github.com/jetsetilly/gopher6526/hardware/cia/interrupts"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
)

// ID identifies one of the two timers.
type ID int

// List of valid ID values.
const (
	A ID = iota
	B
)

func (id ID) String() string {
	if id == B {
		return "TB"
	}
	return "TA"
}

// Half of a 16 bit timer register.
type Half int

// List of valid Half values.
const (
	Low Half = iota
	High
)

// UnderflowMode is the effect an underflow has on the output pin.
type UnderflowMode int

// List of valid UnderflowMode values.
const (
	// PB6/PB7 is high for one cycle
	Pulse UnderflowMode = iota

	// PB6/PB7 changes level
	Toggle
)

func (m UnderflowMode) String() string {
	if m == Toggle {
		return "toggle"
	}
	return "pulse"
}

// InputMode is the event that causes the counter to decrement.
type InputMode int

// List of valid InputMode values. The last two are only available to timer
// B.
const (
	Phi2 InputMode = iota
	CNTEdge
	TimerAUnderflow
	TimerAUnderflowCNT
)

func (m InputMode) String() string {
	switch m {
	case Phi2:
		return "phi2"
	case CNTEdge:
		return "cnt"
	case TimerAUnderflow:
		return "ta"
	case TimerAUnderflowCNT:
		return "ta+cnt"
	}
	return "unknown input mode"
}

// control register bits shared by both timers.
const (
	crStart     uint8 = 0x01
	crPBOn      uint8 = 0x02
	crOutMode   uint8 = 0x04
	crRunMode   uint8 = 0x08
	crForceLoad uint8 = 0x10
	crInModeA   uint8 = 0x20
	crInModeB   uint8 = 0x60
)

// the pipeline groups and other constants that differ between the two
// timers.
type wiring struct {
	count0, count1, count2, count3 uint64
	load1, load2                   uint64
	oneShot                        uint64
	pbLow0, pbLow1                 uint64
	inMode                         uint8
	pin                            uint8
	src                            interrupts.Source
}

var wiringA = wiring{
	count0: delay.CountA0, count1: delay.CountA1, count2: delay.CountA2, count3: delay.CountA3,
	load1: delay.LoadA1, load2: delay.LoadA2,
	oneShot: delay.OneShotA0,
	pbLow0:  delay.PB6Low0, pbLow1: delay.PB6Low1,
	inMode: crInModeA,
	pin:    0x40,
	src:    interrupts.TimerA,
}

var wiringB = wiring{
	count0: delay.CountB0, count1: delay.CountB1, count2: delay.CountB2, count3: delay.CountB3,
	load1: delay.LoadB1, load2: delay.LoadB2,
	oneShot: delay.OneShotB0,
	pbLow0:  delay.PB7Low0, pbLow1: delay.PB7Low1,
	inMode: crInModeB,
	pin:    0x80,
	src:    interrupts.TimerB,
}

// Timer is the state of one timer.
type Timer struct {
	ID ID

	Latch   uint16
	Counter uint16

	// the control register as last written. the force load bit is never
	// stored and the start bit is cleared when a one-shot timer underflows
	Control uint8

	// the toggle flip-flop. changes on every underflow and is set when the
	// timer is started
	FlipFlop bool

	// level of the pulse output
	PulseHigh bool

	// the timer was started by a write in the current cycle. no underflow
	// can happen until the next cycle
	started bool
}

func (t Timer) String() string {
	run := "stopped"
	if t.Running() {
		run = "running"
	}
	s := fmt.Sprintf("%s=%#04x latch=%#04x %s %s", t.ID, t.Counter, t.Latch, run, t.InputMode())
	if t.OneShot() {
		s = fmt.Sprintf("%s oneshot", s)
	}
	if t.OutputToPin() {
		s = fmt.Sprintf("%s %s", s, t.Mode())
	}
	return s
}

func (t Timer) wiring() *wiring {
	if t.ID == B {
		return &wiringB
	}
	return &wiringA
}

// Running returns true if the start bit of the control register is set.
func (t Timer) Running() bool {
	return t.Control&crStart == crStart
}

// OneShot returns true if the timer will stop after the next underflow.
func (t Timer) OneShot() bool {
	return t.Control&crRunMode == crRunMode
}

// Mode returns the effect of an underflow on the output pin.
func (t Timer) Mode() UnderflowMode {
	if t.Control&crOutMode == crOutMode {
		return Toggle
	}
	return Pulse
}

// OutputToPin returns true if underflows are routed to PB6 (timer A) or PB7
// (timer B).
func (t Timer) OutputToPin() bool {
	return t.Control&crPBOn == crPBOn
}

// InputMode returns the event that decrements the counter.
func (t Timer) InputMode() InputMode {
	if t.ID == A {
		return InputMode((t.Control & crInModeA) >> 5)
	}
	return InputMode((t.Control & crInModeB) >> 5)
}

// the level of the output pin for the current mode.
func (t Timer) pinLevel() bool {
	if t.Mode() == Toggle {
		return t.FlipFlop
	}
	return t.PulseHigh
}

// Timers are the two timers of the CIA.
type Timers struct {
	pl    *delay.Pipeline
	irq   *interrupts.Controller
	ports *ports.Ports

	A Timer
	B Timer
}

// NewTimers is the preferred method of initialisation for the Timers type.
func NewTimers(pl *delay.Pipeline, irq *interrupts.Controller, prt *ports.Ports) *Timers {
	tmr := &Timers{
		pl:    pl,
		irq:   irq,
		ports: prt,
		A:     Timer{ID: A},
		B:     Timer{ID: B},
	}
	tmr.Reset()
	return tmr
}

// Snapshot returns a copy of the timers in their current state.
func (tmr *Timers) Snapshot() *Timers {
	n := *tmr
	return &n
}

// Plumb new collaborators into the timers. Required after a snapshot has been
// restored.
func (tmr *Timers) Plumb(pl *delay.Pipeline, irq *interrupts.Controller, prt *ports.Ports) {
	tmr.pl = pl
	tmr.irq = irq
	tmr.ports = prt
}

// Reset timers to the power-on state. Latches and counters are all ones and
// both timers are stopped.
func (tmr *Timers) Reset() {
	for _, t := range []*Timer{&tmr.A, &tmr.B} {
		t.Latch = 0xffff
		t.Counter = 0xffff
		t.Control = 0x00
		t.FlipFlop = false
		t.PulseHigh = false
		t.started = false
		w := t.wiring()
		tmr.pl.ClearFeed(w.count0 | w.oneShot)
		tmr.pl.Clear(w.count0 | w.count1 | w.count2 | w.count3 | w.load1 | w.load2 | w.pbLow0 | w.pbLow1)
		tmr.ports.SetTimerOutput(w.pin, false, false)
	}
}

func (tmr *Timers) String() string {
	return fmt.Sprintf("%s\n%s", tmr.A, tmr.B)
}

func (tmr *Timers) timer(id ID) *Timer {
	if id == B {
		return &tmr.B
	}
	return &tmr.A
}

// Step both timers forward one cycle. Returns true for each timer that
// underflowed.
//
// Must be called after the interrupt controller has been stepped and before
// the pipeline is stepped.
func (tmr *Timers) Step() (bool, bool) {
	underflowA := tmr.step(&tmr.A)

	// timer B counting timer A underflows
	if underflowA && tmr.B.Running() {
		switch tmr.B.InputMode() {
		case TimerAUnderflow:
			tmr.pl.Set(delay.CountB1)
		case TimerAUnderflowCNT:
			if tmr.ports.Pin(ports.CNT) {
				tmr.pl.Set(delay.CountB1)
			}
		}
	}

	underflowB := tmr.step(&tmr.B)

	return underflowA, underflowB
}

func (tmr *Timers) step(t *Timer) bool {
	w := t.wiring()

	// end of pulse
	if tmr.pl.Is(w.pbLow1) {
		t.PulseHigh = false
		tmr.updatePin(t)
	}

	// a counter of zero is held until it underflows
	if tmr.pl.Is(w.count3) && t.Counter > 0 {
		t.Counter--
	}

	underflow := t.Counter == 0 && tmr.pl.Is(w.count2) && !t.started
	t.started = false
	if underflow {
		if (tmr.pl.Delay|tmr.pl.Feed)&w.oneShot != 0 {
			t.Control &^= crStart
			tmr.pl.Clear(w.count2 | w.count1 | w.count0)
			tmr.pl.ClearFeed(w.count0)
		}

		t.FlipFlop = !t.FlipFlop
		if t.OutputToPin() && t.Mode() == Pulse {
			t.PulseHigh = true
			tmr.pl.Set(w.pbLow0)
			tmr.pl.Clear(w.pbLow1)
		}
		tmr.updatePin(t)

		tmr.irq.Raise(w.src)

		tmr.pl.Set(w.load1)
	}

	// reload counter from latch. the count in the next cycle is lost
	if tmr.pl.Is(w.load1) {
		t.Counter = t.Latch
		tmr.pl.Clear(w.count2)
	}

	return underflow
}

func (tmr *Timers) updatePin(t *Timer) {
	w := t.wiring()
	tmr.ports.SetTimerOutput(w.pin, t.OutputToPin(), t.pinLevel())
}

// CNTRise should be called on a rising edge of the CNT pin. Timers counting
// CNT edges will count the edge.
func (tmr *Timers) CNTRise() {
	if tmr.A.Running() && tmr.A.InputMode() == CNTEdge {
		tmr.pl.Set(delay.CountA1)
	}
	if tmr.B.Running() && tmr.B.InputMode() == CNTEdge {
		tmr.pl.Set(delay.CountB1)
	}
}

// ReadCounter returns one half of the current counter value.
func (tmr *Timers) ReadCounter(id ID, half Half) uint8 {
	t := tmr.timer(id)
	if half == High {
		return uint8(t.Counter >> 8)
	}
	return uint8(t.Counter)
}

// ReadControl returns the control register for the timer.
func (tmr *Timers) ReadControl(id ID) uint8 {
	return tmr.timer(id).Control
}

// WriteLatch writes one half of the latch.
//
// If the counter was reloaded in the previous cycle the written value is also
// seen by the counter. Writing the high byte of a stopped timer loads the
// counter from the latch in the next step.
func (tmr *Timers) WriteLatch(id ID, half Half, data uint8) {
	t := tmr.timer(id)
	w := t.wiring()

	switch half {
	case Low:
		t.Latch = t.Latch&0xff00 | uint16(data)
		if tmr.pl.Is(w.load2) {
			t.Counter = t.Counter&0xff00 | uint16(data)
		}
	case High:
		t.Latch = t.Latch&0x00ff | uint16(data)<<8
		if tmr.pl.Is(w.load2) {
			t.Counter = t.Latch
		}
		if !t.Running() {
			tmr.pl.Set(w.load1)
		}
	}
}

// WriteControl writes the control register of the timer. The bits specific to
// other parts of the CIA (serial direction, TOD frequency and TOD alarm
// select) are stored but otherwise ignored.
func (tmr *Timers) WriteControl(id ID, data uint8) {
	t := tmr.timer(id)
	w := t.wiring()

	// counting is only fed by the system clock. other input modes add counts
	// as their events occur
	if data&(crStart|w.inMode) == crStart {
		tmr.pl.Set(w.count2 | w.count1 | w.count0)
		tmr.pl.SetFeed(w.count0)
	} else {
		tmr.pl.Clear(w.count2 | w.count1 | w.count0)
		tmr.pl.ClearFeed(w.count0)
	}

	// the flip-flop is set whenever the timer is started
	if !t.Running() && data&crStart == crStart {
		t.FlipFlop = true
		t.started = true
	}

	// pulse output when the pin is first routed depends on whether a pulse
	// is in progress
	if data&crPBOn == crPBOn && !t.OutputToPin() {
		t.PulseHigh = tmr.pl.Is(w.pbLow1)
	}

	if data&crRunMode == crRunMode {
		tmr.pl.SetFeed(w.oneShot)
	} else {
		tmr.pl.ClearFeed(w.oneShot)
	}

	// force load is immediate. the count of the current cycle, if there is
	// one, is lost
	if data&crForceLoad == crForceLoad {
		t.Counter = t.Latch
		tmr.pl.Clear(w.count3)
	}

	t.Control = data &^ crForceLoad
	tmr.updatePin(t)
}

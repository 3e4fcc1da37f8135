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

package timer_test

import (
	"testing"

	"github.com/jetsetilly/gopher6526/hardware/cia/delay"
	"github.com/jetsetilly/gopher6526/hardware/cia/interrupts"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/cia/timer"
	"github.com/jetsetilly/gopher6526/test"
)

type line struct {
	asserted bool
}

func (l *line) Assert() {
	l.asserted = true
}

func (l *line) Release() {
	l.asserted = false
}

type harness struct {
	pl   *delay.Pipeline
	line *line
	irq  *interrupts.Controller
	prt  *ports.Ports
	tmr  *timer.Timers
}

func newHarness() *harness {
	h := &harness{
		pl:   &delay.Pipeline{},
		line: &line{},
	}
	h.irq = interrupts.NewController(h.line, h.pl)
	h.prt = ports.NewPorts(nil)
	h.tmr = timer.NewTimers(h.pl, h.irq, h.prt)
	return h
}

// one cycle in the same order as the CIA.
func (h *harness) step() (bool, bool) {
	h.irq.Step()
	a, b := h.tmr.Step()
	h.pl.Step()
	return a, b
}

// set the latch of a stopped timer and let the counter load.
func (h *harness) load(id timer.ID, v uint16) {
	h.tmr.WriteLatch(id, timer.Low, uint8(v))
	h.tmr.WriteLatch(id, timer.High, uint8(v>>8))
	h.step()
}

// steps until timer A underflows. returns the number of steps taken, with the
// step in the cycle of the call being step 1.
func (h *harness) untilUnderflowA(t *testing.T, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		if a, _ := h.step(); a {
			return i
		}
	}
	t.Fatalf("no underflow of timer A within %d steps", limit)
	return 0
}

func TestStartDelay(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 1)
	test.DemandEquality(t, h.tmr.A.Counter, uint16(1))

	// the step in the cycle of the start write must not underflow. the step
	// in the following cycle must
	h.tmr.WriteControl(timer.A, 0x01)
	a, _ := h.step()
	test.ExpectFailure(t, a)
	a, _ = h.step()
	test.ExpectSuccess(t, a)
	test.ExpectEquality(t, h.irq.Pending&uint8(interrupts.TimerA), uint8(interrupts.TimerA))

	// a counter of zero is not an underflow in the cycle of the start write
	// either. it is held at zero and underflows in the following cycle, the
	// same as a counter of one
	h = newHarness()
	h.load(timer.A, 0)
	test.DemandEquality(t, h.tmr.A.Counter, uint16(0))
	h.tmr.WriteControl(timer.A, 0x01)
	a, _ = h.step()
	test.ExpectFailure(t, a)
	test.ExpectEquality(t, h.irq.Pending&uint8(interrupts.TimerA), uint8(0x00))
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0))
	a, _ = h.step()
	test.ExpectSuccess(t, a)
	test.ExpectEquality(t, h.irq.Pending&uint8(interrupts.TimerA), uint8(interrupts.TimerA))

	// larger counter values follow the same pattern
	h = newHarness()
	h.load(timer.A, 10)
	h.tmr.WriteControl(timer.A, 0x01)
	test.ExpectEquality(t, h.untilUnderflowA(t, 100), 11)
}

func TestContinuous(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 3)
	h.tmr.WriteControl(timer.A, 0x01)
	test.ExpectEquality(t, h.untilUnderflowA(t, 100), 4)

	// reload with a lost count gives a period of latch+1
	for i := 0; i < 5; i++ {
		test.ExpectEquality(t, h.untilUnderflowA(t, 100), 4)
		test.ExpectSuccess(t, h.tmr.A.Running())
	}

	// counter immediately after the underflow is the latch value and is not
	// decremented in the next cycle
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(3))
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(3))
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(2))
}

func TestOneShot(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 2)
	h.tmr.WriteControl(timer.A, 0x09)
	test.ExpectSuccess(t, h.tmr.A.OneShot())
	test.ExpectEquality(t, h.untilUnderflowA(t, 100), 3)

	test.ExpectFailure(t, h.tmr.A.Running())
	test.ExpectEquality(t, h.tmr.ReadControl(timer.A), uint8(0x08))
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(2))

	for i := 0; i < 20; i++ {
		a, _ := h.step()
		test.DemandFailure(t, a)
	}
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(2))

	// restarting runs for exactly one more underflow
	h.tmr.WriteControl(timer.A, 0x09)
	test.ExpectEquality(t, h.untilUnderflowA(t, 100), 3)
	test.ExpectFailure(t, h.tmr.A.Running())
}

func TestForceLoad(t *testing.T) {
	h := newHarness()

	// the latch write of a stopped timer has not yet reached the counter
	h.tmr.WriteLatch(timer.A, timer.Low, 0x34)
	h.tmr.WriteLatch(timer.A, timer.High, 0x12)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0xffff))

	// force load in the same write as the start bit is immediate
	h.tmr.WriteControl(timer.A, 0x11)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x1234))
	test.ExpectEquality(t, h.tmr.ReadControl(timer.A), uint8(0x01))

	for i := 0; i < 10; i++ {
		h.step()
	}
	test.ExpectInequality(t, h.tmr.A.Counter, uint16(0x1234))

	// force load in the same write as the stop bit is also immediate
	h.tmr.WriteControl(timer.A, 0x10)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x1234))
	test.ExpectFailure(t, h.tmr.A.Running())

	// a count that was in flight is lost to the force load
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x1234))
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x1234))
}

func TestLatchHighRace(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 0x0005)
	h.tmr.WriteControl(timer.A, 0x01)
	h.untilUnderflowA(t, 100)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x0005))

	// the write in the cycle after the reload is seen by the counter
	h.tmr.WriteLatch(timer.A, timer.High, 0x01)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x0105))
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x0105))
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x0104))

	// outside of the race the running counter is unaffected
	h.tmr.WriteLatch(timer.A, timer.High, 0x00)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x0104))
	test.ExpectEquality(t, h.tmr.A.Latch, uint16(0x0005))
}

func TestLatchLowRace(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 0x0005)
	h.tmr.WriteControl(timer.A, 0x01)
	h.untilUnderflowA(t, 100)

	h.tmr.WriteLatch(timer.A, timer.Low, 0x20)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0x0020))
	test.ExpectEquality(t, h.tmr.ReadCounter(timer.A, timer.Low), uint8(0x20))
	test.ExpectEquality(t, h.tmr.ReadCounter(timer.A, timer.High), uint8(0x00))
}

func TestPB6Pulse(t *testing.T) {
	h := newHarness()
	h.prt.Drive(ports.PortB, 0xff, 0x00)
	h.load(timer.A, 2)
	h.tmr.WriteControl(timer.A, 0x03)
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x00))

	h.step()
	h.step()
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x00))
	a, _ := h.step()
	test.DemandSuccess(t, a)
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x40))

	// pulse lasts for one cycle
	h.step()
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x00))
}

func TestPB7Toggle(t *testing.T) {
	h := newHarness()
	h.prt.Drive(ports.PortB, 0xff, 0x00)
	h.load(timer.B, 1)

	// starting the timer sets the flip-flop
	h.tmr.WriteControl(timer.B, 0x07)
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x80))

	h.step()
	_, b := h.step()
	test.DemandSuccess(t, b)
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x00))

	h.step()
	_, b = h.step()
	test.DemandSuccess(t, b)
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x80))
	test.ExpectEquality(t, h.tmr.B.Mode(), timer.Toggle)

	// unrouting the output returns the pin to the port
	h.tmr.WriteControl(timer.B, 0x05)
	test.ExpectEquality(t, h.prt.Read(ports.PortB), uint8(0x00))
}

func TestCascade(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 1)
	h.load(timer.B, 2)
	test.ExpectEquality(t, h.tmr.B.Counter, uint16(2))

	h.tmr.WriteControl(timer.B, 0x41)
	test.ExpectEquality(t, h.tmr.B.InputMode(), timer.TimerAUnderflow)
	h.tmr.WriteControl(timer.A, 0x01)

	underflows := make([]int, 0)
	for i := 1; i <= 20; i++ {
		if _, b := h.step(); b {
			underflows = append(underflows, i)
		}
	}

	// timer A underflows every two cycles and timer B every third timer A
	// underflow
	test.DemandEquality(t, len(underflows), 3)
	test.ExpectEquality(t, underflows[0], 7)
	test.ExpectEquality(t, underflows[1], 13)
	test.ExpectEquality(t, underflows[2], 19)
}

func TestCascadeCNT(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 1)
	h.load(timer.B, 0)

	// CNT is low so timer A underflows are not counted
	h.prt.Drive(ports.CNT, 0x01, 0x00)
	h.tmr.WriteControl(timer.B, 0x61)
	h.tmr.WriteControl(timer.A, 0x01)
	for i := 0; i < 20; i++ {
		_, b := h.step()
		test.DemandFailure(t, b)
	}

	h.prt.Drive(ports.CNT, 0x01, 0x01)
	found := false
	for i := 0; i < 6; i++ {
		if _, b := h.step(); b {
			found = true
		}
	}
	test.ExpectSuccess(t, found)
}

func TestCNTEdges(t *testing.T) {
	h := newHarness()
	h.load(timer.A, 2)
	h.tmr.WriteControl(timer.A, 0x21)
	test.ExpectEquality(t, h.tmr.A.InputMode(), timer.CNTEdge)

	// no counting from the system clock
	for i := 0; i < 10; i++ {
		h.step()
	}
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(2))

	// each edge is counted two cycles later
	h.tmr.CNTRise()
	h.step()
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(2))
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(1))

	h.tmr.CNTRise()
	h.step()
	h.step()
	h.step()
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(0))

	// the edge arriving with the counter at zero causes the underflow
	h.tmr.CNTRise()
	test.ExpectEquality(t, h.untilUnderflowA(t, 3), 2)
	test.ExpectEquality(t, h.tmr.A.Counter, uint16(2))
}

func TestInterruptLine(t *testing.T) {
	h := newHarness()
	h.irq.WriteMask(0x81)
	h.load(timer.A, 1)
	h.tmr.WriteControl(timer.A, 0x01)

	h.step()
	h.step()
	test.ExpectFailure(t, h.line.asserted)
	h.step()
	test.ExpectSuccess(t, h.line.asserted)
	test.ExpectEquality(t, h.irq.ReadStatus(), uint8(0x81))
	test.ExpectFailure(t, h.line.asserted)
}

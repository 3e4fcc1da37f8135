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

package interrupts

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6526/hardware/cia/delay"
)

// Source is the bit in the interrupt control register for an interrupt
// source.
type Source uint8

// List of valid Source values.
const (
	TimerA Source = 0x01
	TimerB Source = 0x02
	Alarm  Source = 0x04
	Serial Source = 0x08
	Flag   Source = 0x10
)

// IR is the bit set in the status register when a masked source has
// requested an interrupt.
const IR uint8 = 0x80

// the bits of the status and mask registers below IR.
const sourceBits uint8 = 0x7f

func (s Source) String() string {
	switch s {
	case TimerA:
		return "TA"
	case TimerB:
		return "TB"
	case Alarm:
		return "ALRM"
	case Serial:
		return "SP"
	case Flag:
		return "FLG"
	}
	return "unknown source"
}

// Line is the interrupt line driven by the controller. The CIA connected to
// the IRQ line and the CIA connected to the NMI line differ only in the Line
// implementation they are given.
type Line interface {
	Assert()
	Release()
}

// Revision of the chip. The revisions differ in how quickly a timer interrupt
// reaches the line.
type Revision int

// List of valid Revision values.
const (
	// the original 6526. interrupts raised by a timer are seen on the line
	// one cycle after the underflow
	Rev6526 Revision = iota

	// the 8521 (sometimes called the "new" CIA) asserts the line in the same
	// cycle as the timer underflow
	Rev8521
)

func (r Revision) String() string {
	if r == Rev8521 {
		return "8521"
	}
	return "6526"
}

// Controller is the interrupt controller of the CIA.
type Controller struct {
	line Line
	pl   *delay.Pipeline

	Revision Revision

	// sources that have requested an interrupt since the last status read.
	// bit 7 (IR) is set when a masked source has been seen
	Pending uint8

	// sources that are allowed to assert the line
	Mask uint8

	// whether the line is currently asserted by the controller
	Asserted bool
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(line Line, pl *delay.Pipeline) *Controller {
	return &Controller{
		line: line,
		pl:   pl,
	}
}

// Snapshot returns a copy of the controller in its current state.
func (c *Controller) Snapshot() *Controller {
	n := *c
	return &n
}

// Plumb a new line and pipeline into the controller. Required after a
// snapshot has been restored.
func (c *Controller) Plumb(line Line, pl *delay.Pipeline) {
	c.line = line
	c.pl = pl
}

// Reset the controller. The line is released if it is asserted.
func (c *Controller) Reset() {
	c.Pending = 0
	c.Mask = 0
	c.release()
}

func (c *Controller) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("ICR=%#02x MASK=%#02x", c.Pending, c.Mask))
	if c.Asserted {
		s.WriteString(" *")
	}
	return s.String()
}

func (c *Controller) assert() {
	if !c.Asserted {
		c.Asserted = true
		c.line.Assert()
	}
}

func (c *Controller) release() {
	c.Asserted = false
	c.line.Release()
}

// Request an interrupt for the source. The pending bit is set and, if the
// source is enabled by the mask, bit 7 is set and the line is asserted
// immediately. Requests while the line is asserted accumulate in the pending
// register.
func (c *Controller) Request(src Source) {
	c.Pending |= uint8(src)
	if c.Mask&uint8(src) != 0 {
		c.Pending |= IR
		c.assert()
	}
}

// Raise an interrupt for the source through the delay pipeline. The pending
// bit is set immediately. Bit 7 and the line are set one cycle later unless
// the status register is read in the meantime.
//
// A source raised in the same cycle as a status read sets the pending bit but
// never asserts the line.
func (c *Controller) Raise(src Source) {
	c.Pending |= uint8(src)
	if c.Mask&uint8(src) == 0 {
		return
	}

	if c.pl.Is(delay.AckIcr0) {
		return
	}

	if c.Revision == Rev8521 && (src == TimerA || src == TimerB) {
		c.Pending |= IR
		c.assert()
		return
	}

	c.pl.Set(delay.Interrupt0 | delay.SetIcr0)
}

// Step should be called once per cycle before the sources are stepped.
func (c *Controller) Step() {
	if c.pl.Is(delay.SetIcr1) {
		c.Pending |= IR
	}
	if c.pl.Is(delay.Interrupt1) {
		c.assert()
	}
}

// ReadStatus returns the pending sources that are enabled by the mask, with
// bit 7 set if a masked source has requested an interrupt. The pending
// register is cleared and the line is released, regardless of the value
// returned.
func (c *Controller) ReadStatus() uint8 {
	v := c.Peek()
	c.Pending = 0
	c.pl.Clear(delay.Interrupt0 | delay.Interrupt1 | delay.SetIcr0 | delay.SetIcr1)
	c.pl.Set(delay.AckIcr0)
	c.release()
	return v
}

// Peek returns the same value as ReadStatus() but without any side effects.
//
// After a status read races a raise, the pending bit of the raised source is
// set but IR is not, and the line stays released. Peek then returns the
// source bit without bit 7. The pending bit is cleared by the next status
// read and the line is only asserted by a later raise or mask write.
func (c *Controller) Peek() uint8 {
	return c.Pending&c.Mask&sourceBits | c.Pending&IR
}

// WriteMask updates the mask register. If bit 7 of the value is set the
// other bits are added to the mask, otherwise they are removed from it.
//
// Enabling a source that is already pending asserts the line one cycle
// later.
func (c *Controller) WriteMask(data uint8) {
	if data&IR == IR {
		c.Mask |= data & sourceBits
	} else {
		c.Mask &^= data & sourceBits
	}

	if c.Pending&c.Mask != 0 && c.Pending&IR == 0 {
		c.pl.Set(delay.Interrupt0 | delay.SetIcr0)
	}
}

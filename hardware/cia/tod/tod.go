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

// Package tod implements the time-of-day clock of the CIA.
//
// The clock counts tenths of seconds, seconds, minutes and hours in BCD with
// an AM/PM flag in bit 7 of the hours register. The clock is driven by the
// mains frequency, divided by five or six depending on bit 7 of control
// register A.
//
// Reading the hours register latches all four registers until the tenths
// register is read. Writing the hours register stops the clock until the
// tenths register is written.
package tod

import (
	"fmt"
)

// Register of the time-of-day clock. The values are the offsets from the
// first TOD register of the CIA.
type Register int

// List of valid Register values.
const (
	Tenths Register = iota
	Seconds
	Minutes
	Hours
)

// Alarm is notified when the clock matches the alarm.
type Alarm interface {
	AlarmMatch()
}

// Clock is the value of the time-of-day clock or the alarm.
type Clock struct {
	Tenths  uint8
	Seconds uint8
	Minutes uint8
	Hours   uint8
}

func (c Clock) String() string {
	pm := "AM"
	if c.Hours&0x80 == 0x80 {
		pm = "PM"
	}
	return fmt.Sprintf("%02x:%02x:%02x.%x %s", c.Hours&0x1f, c.Minutes, c.Seconds, c.Tenths, pm)
}

func (c *Clock) get(reg Register) uint8 {
	switch reg {
	case Tenths:
		return c.Tenths
	case Seconds:
		return c.Seconds
	case Minutes:
		return c.Minutes
	}
	return c.Hours
}

// register widths.
var masks = [4]uint8{0x0f, 0x7f, 0x7f, 0x9f}

func (c *Clock) set(reg Register, data uint8) {
	data &= masks[reg&0x03]
	switch reg {
	case Tenths:
		c.Tenths = data
	case Seconds:
		c.Seconds = data
	case Minutes:
		c.Minutes = data
	case Hours:
		c.Hours = data
	}
}

func bcdInc(v uint8) uint8 {
	if v&0x0f >= 0x09 {
		return (v & 0xf0) + 0x10
	}
	return v + 1
}

// advance the clock by one tenth of a second.
func (c *Clock) tick() {
	c.Tenths = (c.Tenths + 1) & 0x0f
	if c.Tenths < 10 {
		return
	}
	c.Tenths = 0

	c.Seconds = bcdInc(c.Seconds)
	if c.Seconds < 0x60 {
		return
	}
	c.Seconds = 0

	c.Minutes = bcdInc(c.Minutes)
	if c.Minutes < 0x60 {
		return
	}
	c.Minutes = 0

	h := c.Hours & 0x1f
	pm := c.Hours & 0x80
	switch h {
	case 0x11:
		h = 0x12
		pm ^= 0x80
	case 0x12:
		h = 0x01
	default:
		h = bcdInc(h)
	}
	c.Hours = pm | h
}

// TOD is the time-of-day clock.
type TOD struct {
	alarm Alarm

	Time  Clock
	Alarm Clock

	// the time as it was when the hours register was read
	latch   Clock
	Latched bool

	// the clock is stopped after the hours register is written
	Stopped bool

	// clock and mains frequency in Hz
	clockHz int
	mainsHz int

	// accumulates mainsHz every cycle. a mains tick occurs every time the
	// accumulator exceeds clockHz
	acc int

	// mains ticks since the last tenth
	ticks int

	// the most recent comparison of time and alarm. the alarm is notified on
	// the transition to a match only
	matched bool
}

// NewTOD is the preferred method of initialisation for the TOD type.
func NewTOD(alarm Alarm, clockHz int, mainsHz int) *TOD {
	tod := &TOD{alarm: alarm}
	tod.SetFrequency(clockHz, mainsHz)
	tod.Reset()
	return tod
}

// Snapshot returns a copy of the clock in its current state.
func (tod *TOD) Snapshot() *TOD {
	n := *tod
	return &n
}

// Plumb a new alarm into the clock. Required after a snapshot has been
// restored.
func (tod *TOD) Plumb(alarm Alarm) {
	tod.alarm = alarm
}

// SetFrequency of the system clock and the mains supply.
func (tod *TOD) SetFrequency(clockHz int, mainsHz int) {
	if clockHz <= 0 {
		clockHz = 1
	}
	tod.clockHz = clockHz
	tod.mainsHz = mainsHz
	tod.acc = 0
}

// Reset the clock to 01:00:00.0 AM. The clock is running.
func (tod *TOD) Reset() {
	tod.Time = Clock{Hours: 0x01}
	tod.Alarm = Clock{}
	tod.latch = Clock{}
	tod.Latched = false
	tod.Stopped = false
	tod.acc = 0
	tod.ticks = 0
	tod.matched = false
}

func (tod *TOD) String() string {
	s := tod.Time.String()
	if tod.Stopped {
		s = fmt.Sprintf("%s stopped", s)
	}
	return fmt.Sprintf("%s alarm %s", s, tod.Alarm)
}

// Read a clock register. Reading hours latches the clock and reading tenths
// releases the latch.
func (tod *TOD) Read(reg Register) uint8 {
	switch reg {
	case Hours:
		if !tod.Latched {
			tod.latch = tod.Time
			tod.Latched = true
		}
	case Tenths:
		if tod.Latched {
			tod.Latched = false
			return tod.latch.Tenths
		}
	}
	return tod.Peek(reg)
}

// Peek returns the value of a clock register without side effects.
func (tod *TOD) Peek(reg Register) uint8 {
	if tod.Latched {
		return tod.latch.get(reg)
	}
	return tod.Time.get(reg)
}

// Write a clock register. If alarm is true then the alarm is written rather
// than the clock.
func (tod *TOD) Write(reg Register, data uint8, alarm bool) {
	if alarm {
		tod.Alarm.set(reg, data)
		tod.compare()
		return
	}

	switch reg {
	case Hours:
		tod.Stopped = true

		// writing 12 to the hours register flips the AM/PM flag
		if data&0x1f == 0x12 {
			data ^= 0x80
		}
	case Tenths:
		tod.Stopped = false
		tod.ticks = 0
	}

	tod.Time.set(reg, data)
	tod.compare()
}

// Step the clock forward one cycle. The hz50 argument is bit 7 of control
// register A.
func (tod *TOD) Step(hz50 bool) {
	tod.acc += tod.mainsHz
	if tod.acc < tod.clockHz {
		return
	}
	tod.acc -= tod.clockHz

	if tod.Stopped {
		return
	}

	div := 6
	if hz50 {
		div = 5
	}

	tod.ticks++
	if tod.ticks < div {
		return
	}
	tod.ticks = 0

	tod.Time.tick()
	tod.compare()
}

func (tod *TOD) compare() {
	m := tod.Time == tod.Alarm
	if m && !tod.matched && tod.alarm != nil {
		tod.alarm.AlarmMatch()
	}
	tod.matched = m
}

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

package cpu

import (
	"fmt"
	"strings"
)

// LineID identifies one of the two interrupt lines of the CPU.
type LineID int

// List of valid LineID values.
const (
	IRQ LineID = iota
	NMI
)

func (id LineID) String() string {
	switch id {
	case IRQ:
		return "IRQ"
	case NMI:
		return "NMI"
	}
	return "unknown line"
}

// Pin connects a single source to an interrupt line. It implements the
// interrupts.Line interface.
type Pin struct {
	lines *Lines
	line  LineID
	label string
	low   bool
}

// Assert pulls the line low. Asserting a pin that is already asserted has no
// effect.
func (p *Pin) Assert() {
	if p.low {
		return
	}
	p.low = true
	p.lines.pull(p.line, 1)
}

// Release the line. Releasing a pin that is not asserted has no effect.
func (p *Pin) Release() {
	if !p.low {
		return
	}
	p.low = false
	p.lines.pull(p.line, -1)
}

// Asserted returns true if the pin is pulling the line low.
func (p *Pin) Asserted() bool {
	return p.low
}

func (p *Pin) String() string {
	if p.low {
		return fmt.Sprintf("%s:%s low", p.line, p.label)
	}
	return fmt.Sprintf("%s:%s", p.line, p.label)
}

// Lines collects the interrupt pins of every source in the machine.
type Lines struct {
	pins []*Pin

	// number of pins pulling each line low
	count [2]int

	// the NMI edge latch
	nmiEdge bool
}

// NewLines is the preferred method of initialisation for the Lines type.
func NewLines() *Lines {
	return &Lines{}
}

// NewPin creates a new source for the line. The label is used for
// presentation only.
func (l *Lines) NewPin(line LineID, label string) *Pin {
	p := &Pin{
		lines: l,
		line:  line,
		label: label,
	}
	l.pins = append(l.pins, p)
	return p
}

func (l *Lines) pull(line LineID, delta int) {
	prev := l.count[line]
	l.count[line] += delta
	if line == NMI && prev == 0 && l.count[line] > 0 {
		l.nmiEdge = true
	}
}

// Reset releases every pin and clears the NMI edge latch.
func (l *Lines) Reset() {
	for _, p := range l.pins {
		p.low = false
	}
	l.count = [2]int{}
	l.nmiEdge = false
}

// Snapshot returns the state of every pin and of the NMI edge latch, in the
// order in which the pins were created.
func (l *Lines) Snapshot() *LinesState {
	s := &LinesState{
		NMIEdge: l.nmiEdge,
		Pins:    make([]bool, len(l.pins)),
	}
	for i, p := range l.pins {
		s.Pins[i] = p.low
	}
	return s
}

// Restore the state of the pins from a snapshot. The snapshot must have come
// from the same Lines instance or from one with the same pins.
func (l *Lines) Restore(s *LinesState) {
	l.count = [2]int{}
	for i, p := range l.pins {
		p.low = i < len(s.Pins) && s.Pins[i]
		if p.low {
			l.count[p.line]++
		}
	}
	l.nmiEdge = s.NMIEdge
}

// LinesState is the state of the interrupt lines as returned by Snapshot().
type LinesState struct {
	Pins    []bool
	NMIEdge bool
}

// IRQ returns true if the IRQ line is asserted.
func (l *Lines) IRQ() bool {
	return l.count[IRQ] > 0
}

// NMI returns true if the NMI line is asserted. Use PendingNMI() to see if an
// NMI edge has occurred.
func (l *Lines) NMI() bool {
	return l.count[NMI] > 0
}

// PendingNMI returns true if the NMI line has been asserted since the last
// call to AcknowledgeNMI().
func (l *Lines) PendingNMI() bool {
	return l.nmiEdge
}

// AcknowledgeNMI clears the NMI edge latch. Returns the value of the latch
// before it was cleared.
func (l *Lines) AcknowledgeNMI() bool {
	e := l.nmiEdge
	l.nmiEdge = false
	return e
}

func (l *Lines) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("IRQ=%v NMI=%v", l.IRQ(), l.NMI()))
	if l.nmiEdge {
		s.WriteString(" (nmi pending)")
	}
	return s.String()
}

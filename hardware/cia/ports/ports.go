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

package ports

import (
	"fmt"
)

// PortID identifies a port or pin of the CIA.
type PortID int

// List of valid PortID values.
const (
	PortA PortID = iota
	PortB
	Flag
	CNT
	SP
)

func (id PortID) String() string {
	switch id {
	case PortA:
		return "PA"
	case PortB:
		return "PB"
	case Flag:
		return "FLAG"
	case CNT:
		return "CNT"
	case SP:
		return "SP"
	}
	return "unknown port"
}

// Edges is implemented by the owner of the Ports type and is called
// synchronously when an edge is detected on a control pin.
type Edges interface {
	// a high to low transition on the FLAG pin
	FlagFall()

	// a low to high transition on the CNT pin
	CNTRise()
}

// Monitor is implemented by peripherals that want to know when the output of
// the CIA changes. The value for control pins is 0 or 1.
type Monitor interface {
	PortChanged(id PortID, value uint8)
}

// Port is one of the two 8 bit data ports.
type Port struct {
	// the value most recently written by the CPU
	Latch uint8

	// the data direction register. a 1 bit indicates output
	DDR uint8

	// the value most recently driven by a peripheral. bits that have never
	// been driven are pulled up
	External uint8
}

// the value seen by the CPU.
func (p Port) value() uint8 {
	return p.Latch&p.DDR | p.External&^p.DDR
}

// the value seen by peripherals. inputs are pulled high.
func (p Port) output() uint8 {
	return p.Latch | ^p.DDR
}

// Ports implements the I/O part of the CIA.
type Ports struct {
	edges   Edges
	monitor Monitor

	A Port
	B Port

	// external level of the FLAG pin
	flag bool

	// level of the CNT and SP pins. driven externally when the serial port
	// is in input mode and by the CIA when it is in output mode
	cnt bool
	sp  bool

	// timer output for PB6 and PB7. the bits in pb67Mode indicate whether the
	// timer output is routed to the pin and pb67Out is the level
	pb67Mode uint8
	pb67Out  uint8
}

// NewPorts is the preferred method of initialisation of the Ports type.
func NewPorts(edges Edges) *Ports {
	p := &Ports{
		edges: edges,
	}
	p.Reset()
	return p
}

// Snapshot returns a copy of the Ports sub-system in its current state.
func (p *Ports) Snapshot() *Ports {
	n := *p
	return &n
}

// Plumb a new Edges implementation into the Ports sub-system. Required after
// a snapshot has been restored.
func (p *Ports) Plumb(edges Edges) {
	p.edges = edges
}

// AttachMonitor connects a Monitor implementation to the ports. Only one
// monitor can be attached at a time. A nil value detaches the monitor.
func (p *Ports) AttachMonitor(m Monitor) {
	p.monitor = m
}

// Reset ports to the power-on state. All pins are inputs and pulled up.
func (p *Ports) Reset() {
	p.A = Port{External: 0xff}
	p.B = Port{External: 0xff}
	p.flag = true
	p.cnt = true
	p.sp = true
	p.pb67Mode = 0
	p.pb67Out = 0
}

func (p *Ports) String() string {
	return fmt.Sprintf("PA=%#02x DDRA=%#02x PB=%#02x DDRB=%#02x FLAG=%v CNT=%v SP=%v",
		p.Read(PortA), p.A.DDR, p.Read(PortB), p.B.DDR, p.flag, p.cnt, p.sp)
}

func (p *Ports) port(id PortID) *Port {
	if id == PortB {
		return &p.B
	}
	return &p.A
}

// Read the value of a data port as seen by the CPU. For control pins the
// value is 0 or 1.
func (p *Ports) Read(id PortID) uint8 {
	switch id {
	case PortA:
		return p.A.value()
	case PortB:
		return p.B.value()&^p.pb67Mode | p.pb67Out&p.pb67Mode
	}
	return bit(p.Pin(id))
}

// ReadDDR returns the data direction register for the port.
func (p *Ports) ReadDDR(id PortID) uint8 {
	return p.port(id).DDR
}

// Output returns the value of a data port as seen by peripherals.
func (p *Ports) Output(id PortID) uint8 {
	switch id {
	case PortA:
		return p.A.output()
	case PortB:
		return p.B.output()&^p.pb67Mode | p.pb67Out&p.pb67Mode
	}
	return bit(p.Pin(id))
}

// Write value to the output latch of a data port.
func (p *Ports) Write(id PortID, data uint8) {
	prev := p.Output(id)
	p.port(id).Latch = data
	p.changed(id, prev)
}

// WriteDDR sets the data direction register for the port.
func (p *Ports) WriteDDR(id PortID, data uint8) {
	prev := p.Output(id)
	p.port(id).DDR = data
	p.changed(id, prev)
}

func (p *Ports) changed(id PortID, prev uint8) {
	if p.monitor == nil {
		return
	}
	if v := p.Output(id); v != prev {
		p.monitor.PortChanged(id, v)
	}
}

// Drive is called by peripherals to change the level of input pins. Only the
// bits in mask are changed. For the control pins only bit 0 is considered.
//
// A falling edge on the FLAG pin and a rising edge on the CNT pin are
// forwarded to the Edges implementation before the function returns.
func (p *Ports) Drive(id PortID, mask uint8, values uint8) {
	switch id {
	case PortA, PortB:
		prt := p.port(id)
		prt.External = prt.External&^mask | values&mask
		return
	}

	if mask&0x01 == 0x01 {
		p.setPin(id, values&0x01 == 0x01)
	}
}

func (p *Ports) setPin(id PortID, level bool) {
	switch id {
	case Flag:
		fall := p.flag && !level
		p.flag = level
		if fall && p.edges != nil {
			p.edges.FlagFall()
		}
	case CNT:
		rise := !p.cnt && level
		p.cnt = level
		if rise && p.edges != nil {
			p.edges.CNTRise()
		}
	case SP:
		p.sp = level
	}
}

// SetOutputPin is used by the CIA to drive the CNT or SP pin when the serial
// port is in output mode. Unlike Drive() no edge handling takes place but an
// attached monitor is notified of the change.
func (p *Ports) SetOutputPin(id PortID, level bool) {
	var prev bool
	switch id {
	case CNT:
		prev = p.cnt
		p.cnt = level
	case SP:
		prev = p.sp
		p.sp = level
	default:
		return
	}
	if prev != level && p.monitor != nil {
		p.monitor.PortChanged(id, bit(level))
	}
}

// Pin returns the level of the FLAG, CNT or SP pin.
func (p *Ports) Pin(id PortID) bool {
	switch id {
	case Flag:
		return p.flag
	case CNT:
		return p.cnt
	case SP:
		return p.sp
	}
	return false
}

// SetTimerOutput routes (or unroutes) timer output to a bit of port B. The
// pin argument is the bit mask of the pin: 0x40 for PB6 or 0x80 for PB7.
func (p *Ports) SetTimerOutput(pin uint8, routed bool, high bool) {
	prev := p.Output(PortB)
	if routed {
		p.pb67Mode |= pin
	} else {
		p.pb67Mode &^= pin
	}
	if high {
		p.pb67Out |= pin
	} else {
		p.pb67Out &^= pin
	}
	p.changed(PortB, prev)
}

func bit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

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

package input

import (
	"fmt"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
)

// Event is a change to the level of the input pins of a CIA port.
type Event struct {
	// the CIA the event is for. 1 or 2
	Chip int

	Port  ports.PortID
	Mask  uint8
	Value uint8
}

func (ev Event) String() string {
	return fmt.Sprintf("cia%d %s %#02x/%#02x", ev.Chip, ev.Port, ev.Value, ev.Mask)
}

// TimedEvent is an Event and the cycle on which it occurred.
type TimedEvent struct {
	Cycle uint64
	Event
}

// Target is the recipient of input events. Implemented by the machine.
type Target interface {
	Drive(ev Event) error
	Cycle() uint64
}

// EventRecorder implementations record input events.
type EventRecorder interface {
	RecordEvent(TimedEvent) error
}

// EventPlayback implementations return the input events recorded for a cycle.
type EventPlayback interface {
	GetPlayback(cycle uint64) ([]Event, error)
}

// size of the pushed event queue.
const queueSize = 64

// Input handles all forms of input into the machine.
type Input struct {
	target Target

	playback EventPlayback
	recorder EventRecorder

	// events pushed onto the input queue
	pushed chan Event
}

// NewInput is the preferred method of initialisation for the Input type.
func NewInput(target Target) *Input {
	return &Input{
		target: target,
		pushed: make(chan Event, queueSize),
	}
}

// Plumb a new target into the Input.
func (inp *Input) Plumb(target Target) {
	inp.target = target
}

// AttachRecorder attaches an EventRecorder. A nil value detaches the current
// recorder.
func (inp *Input) AttachRecorder(r EventRecorder) error {
	if r != nil && inp.playback != nil {
		return curated.Errorf("input: cannot record while playback is attached")
	}
	inp.recorder = r
	return nil
}

// AttachPlayback attaches an EventPlayback. A nil value detaches the current
// playback.
func (inp *Input) AttachPlayback(p EventPlayback) error {
	if p != nil && inp.recorder != nil {
		return curated.Errorf("input: cannot playback while recorder is attached")
	}
	inp.playback = p
	return nil
}

// HandleEvent drives the event to the target immediately.
//
// If a playback is currently active the event will not be handled and false
// will be returned.
func (inp *Input) HandleEvent(ev Event) (bool, error) {
	if inp.playback != nil {
		return false, nil
	}

	if inp.recorder != nil {
		err := inp.recorder.RecordEvent(TimedEvent{Cycle: inp.target.Cycle(), Event: ev})
		if err != nil {
			return false, curated.Errorf("input: %v", err)
		}
	}

	if err := inp.target.Drive(ev); err != nil {
		return false, err
	}

	return true, nil
}

// Handle should be called once per cycle. Pushed events and any playback
// events for the cycle are driven to the target.
func (inp *Input) Handle() error {
	if err := inp.handlePushed(); err != nil {
		return err
	}
	return inp.handlePlayback()
}

func (inp *Input) handlePlayback() error {
	if inp.playback == nil {
		return nil
	}

	evs, err := inp.playback.GetPlayback(inp.target.Cycle())
	if err != nil {
		return curated.Errorf("input: %v", err)
	}

	for _, ev := range evs {
		if err := inp.target.Drive(ev); err != nil {
			return err
		}
	}

	return nil
}

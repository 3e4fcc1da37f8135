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

package terminal

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/input"
)

// Command is the type of action requested by a keypress.
type Command int

// List of valid Command values.
const (
	NoCommand Command = iota
	StepCycle
	ToggleRun
	DriveInput
	Flag
	Status
	Reset
	Quit
)

func (c Command) String() string {
	switch c {
	case StepCycle:
		return "step"
	case ToggleRun:
		return "run/pause"
	case DriveInput:
		return "drive"
	case Flag:
		return "flag"
	case Status:
		return "status"
	case Reset:
		return "reset"
	case Quit:
		return "quit"
	}
	return "none"
}

// Action is the result of translating a keypress.
type Action struct {
	Command Command

	// events to push to the machine. used by the DriveInput and Flag commands
	Events []input.Event
}

// Keymap translates keypresses into actions. The state of the port bits
// driven by the digit keys is remembered between keypresses.
type Keymap struct {
	port uint8
}

// NewKeymap is the preferred method of initialisation for the Keymap type.
func NewKeymap() *Keymap {
	return &Keymap{port: 0xff}
}

// Port returns the current value of the port bits driven by the keymap.
func (km *Keymap) Port() uint8 {
	return km.port
}

// Translate a single key into an action.
func (km *Keymap) Translate(key byte) Action {
	switch key {
	case ' ', '\n', '\r':
		return Action{Command: StepCycle}
	case 'r', 'R':
		return Action{Command: ToggleRun}
	case 'f', 'F':
		// a low pulse on the FLAG pin of CIA1
		return Action{
			Command: Flag,
			Events: []input.Event{
				{Chip: 1, Port: ports.Flag, Mask: 0x01, Value: 0x00},
				{Chip: 1, Port: ports.Flag, Mask: 0x01, Value: 0x01},
			},
		}
	case 's', 'S':
		return Action{Command: Status}
	case 'x', 'X':
		km.port = 0xff
		return Action{Command: Reset}
	case 'q', 'Q', 0x1b:
		return Action{Command: Quit}
	}

	if key >= '1' && key <= '8' {
		bit := uint8(0x01) << (key - '1')
		km.port ^= bit
		return Action{
			Command: DriveInput,
			Events: []input.Event{
				{Chip: 1, Port: ports.PortA, Mask: bit, Value: km.port & bit},
			},
		}
	}

	return Action{Command: NoCommand}
}

// Help returns a description of the keys understood by the keymap.
func (km *Keymap) Help() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%-10s %s\n", "space", StepCycle))
	s.WriteString(fmt.Sprintf("%-10s %s\n", "r", ToggleRun))
	s.WriteString(fmt.Sprintf("%-10s %s\n", "1-8", "toggle CIA1 port A bit"))
	s.WriteString(fmt.Sprintf("%-10s %s\n", "f", Flag))
	s.WriteString(fmt.Sprintf("%-10s %s\n", "s", Status))
	s.WriteString(fmt.Sprintf("%-10s %s\n", "x", Reset))
	s.WriteString(fmt.Sprintf("%-10s %s\n", "q", Quit))
	return s.String()
}

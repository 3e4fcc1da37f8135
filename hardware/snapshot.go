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

package hardware

import (
	"github.com/jetsetilly/gopher6526/hardware/cia"
	"github.com/jetsetilly/gopher6526/hardware/cpu"
)

// State stores the machine sub-systems. It is produced by the Snapshot()
// function and can be restored with the Plumb() function.
//
// Note in particular that peripherals and monitors are not part of the
// snapshot process.
type State struct {
	CIA1  *cia.CIA
	CIA2  *cia.CIA
	Lines *cpu.LinesState
	Cycle uint64
}

// Snapshot creates a copy of a previously snapshotted State.
func (s *State) Snapshot() *State {
	l := *s.Lines
	l.Pins = append([]bool{}, s.Lines.Pins...)
	return &State{
		CIA1:  s.CIA1.Snapshot(),
		CIA2:  s.CIA2.Snapshot(),
		Lines: &l,
		Cycle: s.Cycle,
	}
}

// Snapshot the state of the machine sub-systems.
func (m *Machine) Snapshot() *State {
	return &State{
		CIA1:  m.CIA1.Snapshot(),
		CIA2:  m.CIA2.Snapshot(),
		Lines: m.Lines.Snapshot(),
		Cycle: m.cycle,
	}
}

// Plumb a previously snapshotted state into the machine.
func (m *Machine) Plumb(state *State) {
	if state == nil {
		panic("machine: cannot plumb in a nil state")
	}

	// take another snapshot of the state before plumbing. we don't want the
	// machine to change what we have stored in the state
	state = state.Snapshot()

	m.CIA1 = state.CIA1
	m.CIA2 = state.CIA2
	m.CIA1.Plumb(m.Env, m.irq)
	m.CIA2.Plumb(m.Env, m.nmi)
	m.CIA1.Ports.AttachMonitor(m.monitors[0])
	m.CIA2.Ports.AttachMonitor(m.monitors[1])

	m.Lines.Restore(state.Lines)
	m.cycle = state.Cycle

	m.Input.Plumb(m)
}

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

package recorder_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/input"
	"github.com/jetsetilly/gopher6526/recorder"
	"github.com/jetsetilly/gopher6526/test"
)

func newMachine() *hardware.Machine {
	return hardware.NewMachine(environment.NewEnvironment(environment.MainEmulation, nil))
}

func record(t *testing.T) string {
	t.Helper()

	pth := filepath.Join(t.TempDir(), "recording")
	m := newMachine()
	rec, err := recorder.NewRecorder(pth, m)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, m.Write(0xdc0d, 0x90))
	test.DemandSuccess(t, m.RunForCycles(10, nil))

	_, err = m.Input.HandleEvent(input.Event{Chip: 1, Port: ports.Flag, Mask: 0x01, Value: 0x00})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.RunForCycles(10, nil))

	test.DemandSuccess(t, m.Input.PushEvent(input.Event{Chip: 1, Port: ports.Flag, Mask: 0x01, Value: 0x01}))
	test.DemandSuccess(t, m.RunForCycles(30, nil))

	test.DemandSuccess(t, rec.End())
	return pth
}

func TestPlayback(t *testing.T) {
	pth := record(t)

	plb, err := recorder.NewPlayback(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.Revision, "6526")

	m := newMachine()
	test.DemandSuccess(t, plb.AttachToMachine(m))
	test.DemandSuccess(t, m.Write(0xdc0d, 0x90))

	test.DemandSuccess(t, m.RunForCycles(10, nil))
	test.ExpectFailure(t, m.Lines.IRQ())
	test.DemandSuccess(t, m.Step())
	test.ExpectSuccess(t, m.Lines.IRQ())

	test.DemandSuccess(t, m.RunForCycles(30, nil))
	test.ExpectSuccess(t, m.CIA1.Ports.Pin(ports.Flag))
	test.ExpectSuccess(t, plb.EndCycle())
}

func TestPlaybackMismatch(t *testing.T) {
	pth := record(t)

	plb, err := recorder.NewPlayback(pth)
	test.DemandSuccess(t, err)

	m := newMachine()
	test.DemandSuccess(t, plb.AttachToMachine(m))

	// a different port direction means a different state at the time of the
	// event
	test.DemandSuccess(t, m.Write(0xdc0d, 0x90))
	test.DemandSuccess(t, m.Write(0xdc02, 0xff))
	err = m.RunForCycles(50, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, recorder.PlaybackHashError))
}

func TestRevisionMismatch(t *testing.T) {
	pth := record(t)

	plb, err := recorder.NewPlayback(pth)
	test.DemandSuccess(t, err)

	m := newMachine()
	test.DemandSuccess(t, m.Env.Prefs.Revision.Set("8521"))
	test.ExpectFailure(t, plb.AttachToMachine(m))
}

func TestInvalidRecording(t *testing.T) {
	_, err := recorder.NewPlayback(filepath.Join(t.TempDir(), "missing"))
	test.ExpectFailure(t, err)
}

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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/test"
	"github.com/jetsetilly/gopher6526/wavwriter"
)

func TestTimerOutput(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)

	// two cycles per sample
	test.DemandSuccess(t, env.Prefs.Clock.Set(wavwriter.SampleFreq*2))
	m := hardware.NewMachine(env)

	pth := filepath.Join(t.TempDir(), "pins.wav")
	aw, err := wavwriter.New(env, pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, aw.Filename(), pth)

	test.DemandSuccess(t, m.AttachMonitor(1, aw))
	m.AttachPeripheral(aw)

	// timer A toggling PB6 every ten cycles
	test.DemandSuccess(t, m.Write(0xdc04, 0x09))
	test.DemandSuccess(t, m.Write(0xdc05, 0x00))
	test.DemandSuccess(t, m.Step())
	test.DemandSuccess(t, m.Write(0xdc0e, 0x07))

	test.DemandSuccess(t, m.RunForCycles(199, nil))
	test.ExpectEquality(t, aw.NumSamples(), 100)
	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := gowav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.SampleRate), wavwriter.SampleFreq)
	test.DemandEquality(t, len(buf.Data), 100)

	levels := make(map[int]bool)
	for _, v := range buf.Data {
		levels[v] = true
	}
	test.ExpectEquality(t, len(levels), 2)
}

func TestSlowClock(t *testing.T) {
	env := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, env.Prefs.Clock.Set(1000))
	_, err := wavwriter.New(env, "")
	test.ExpectFailure(t, err)
}

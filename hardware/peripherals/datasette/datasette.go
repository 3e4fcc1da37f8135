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

package datasette

import (
	"fmt"
	"math"
	"os"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/input"
	"github.com/jetsetilly/gopher6526/logger"
)

// tag string used in called to Log().
const logTag = "datasette"

// the CIA the read line is connected to.
const readChip = 1

// Datasette is a tape deck playing a sound file into the FLAG pin of CIA1.
type Datasette struct {
	env    *environment.Environment
	target input.Target

	Filename string

	// sample levels
	samples []float32

	// speed of samples in Hz
	sampleRate float64

	// current index of samples array
	idx int

	// is the tape currently playing
	Playing bool

	// the number of cycles per sample. the tape is advanced every regulator
	// calls to Step()
	regulator   int
	regulatorCt int

	// the level most recently driven to the read line
	level bool
}

// NewDatasette is the preferred method of initialisation for the Datasette
// type. The target will usually be the machine the datasette is attached to.
//
// The tape is rewound and stopped.
func NewDatasette(env *environment.Environment, target input.Target, filename string) (*Datasette, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("datasette: %v", err)
	}
	defer f.Close()

	pcm, err := getPCM(env, f, filename)
	if err != nil {
		return nil, curated.Errorf("datasette: %v", err)
	}

	dat := &Datasette{
		env:        env,
		target:     target,
		Filename:   filename,
		samples:    pcm.data,
		sampleRate: pcm.sampleRate,
		level:      true,
	}

	// calculate tape regulator speed from the system clock
	dat.regulator = int(math.Round(float64(env.Prefs.Clock.Get().(int)) / dat.sampleRate))
	if dat.regulator < 1 {
		dat.regulator = 1
	}
	logger.Logf(env, logTag, "tape regulator: %d", dat.regulator)

	dat.Rewind()

	return dat, nil
}

func (dat *Datasette) String() string {
	state := "stopped"
	if dat.Playing {
		state = "playing"
	}
	return fmt.Sprintf("%s %d/%d (%.2fs)", state, dat.idx, len(dat.samples), float64(dat.idx)/dat.sampleRate)
}

// Counter returns the current position of the tape and the length of the tape,
// both in samples.
func (dat *Datasette) Counter() (int, int) {
	return dat.idx, len(dat.samples)
}

// Play the tape from its current position.
func (dat *Datasette) Play() {
	if dat.idx >= len(dat.samples) {
		logger.Log(dat.env, logTag, "cannot play: end of tape")
		return
	}
	dat.Playing = true
	dat.regulatorCt = 0
}

// Stop the tape. The read line is left at its current level.
func (dat *Datasette) Stop() {
	dat.Playing = false
}

// Rewind the tape to the beginning. Rewinding happens instantaneously and the
// tape is stopped.
func (dat *Datasette) Rewind() {
	dat.idx = 0
	dat.Playing = false
	logger.Log(dat.env, logTag, "tape rewound")
}

// Step implements the hardware.Peripheral interface.
func (dat *Datasette) Step() {
	if !dat.Playing {
		return
	}

	dat.regulatorCt++
	if dat.regulatorCt < dat.regulator {
		return
	}
	dat.regulatorCt = 0

	if dat.idx >= len(dat.samples) {
		dat.Playing = false
		logger.Log(dat.env, logTag, "end of tape")
		return
	}

	threshold := float32(dat.env.Prefs.TapeThreshold.Get().(float64))
	dat.drive(dat.samples[dat.idx] > threshold)
	dat.idx++
}

func (dat *Datasette) drive(level bool) {
	if level == dat.level {
		return
	}
	dat.level = level

	ev := input.Event{
		Chip: readChip,
		Port: ports.Flag,
		Mask: 0x01,
	}
	if level {
		ev.Value = 0x01
	}

	if err := dat.target.Drive(ev); err != nil {
		logger.Logf(dat.env, logTag, "%v", err)
	}
}

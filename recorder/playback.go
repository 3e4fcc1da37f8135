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

package recorder

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/digest"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/hardware/input"
)

type playbackEntry struct {
	cycle uint64
	event input.Event
	hash  string

	// the line in the recording file the playback event appears
	line int
}

// Playback is used to reperform the input recorded in a previously recorded
// file. It implements the input.EventPlayback interface.
type Playback struct {
	transcript string

	// revision of the CIA the recording was made with
	Revision string

	sequence []playbackEntry
	seqCt    int

	m      *hardware.Machine
	digest *digest.Registers

	// the last cycle where an event occurs
	endCycle uint64
}

func (plb Playback) String() string {
	if plb.m == nil {
		return fmt.Sprintf("%d events", len(plb.sequence))
	}
	curr := plb.m.Cycle()
	return fmt.Sprintf("%d/%d (%.1f%%)", curr, plb.endCycle, 100*(float64(curr)/float64(plb.endCycle)))
}

// EndCycle returns true if emulation has gone past the last cycle of the
// playback.
func (plb Playback) EndCycle() bool {
	return plb.m == nil || plb.m.Cycle() > plb.endCycle
}

// NewPlayback is the preferred method of implementation for the Playback type.
func NewPlayback(transcript string) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
		sequence:   make([]playbackEntry, 0),
	}

	buffer, err := os.ReadFile(transcript)
	if err != nil {
		return nil, curated.Errorf("playback: %v", err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(string(buffer), "\n")

	// read header and perform validation checks
	err = plb.readHeader(lines)
	if err != nil {
		return nil, err
	}

	for i := numHeaderLines; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		toks := strings.Split(lines[i], fieldSep)

		if len(toks) != numFields {
			return nil, curated.Errorf("playback: expected %d fields at line %d", numFields, i+1)
		}

		entry := playbackEntry{line: i + 1}

		entry.cycle, err = strconv.ParseUint(toks[fieldCycle], 10, 64)
		if err != nil {
			return nil, curated.Errorf("playback: %v line %d", err, i+1)
		}

		entry.event.Chip, err = strconv.Atoi(toks[fieldChip])
		if err != nil {
			return nil, curated.Errorf("playback: %v line %d", err, i+1)
		}

		port, err := strconv.Atoi(toks[fieldPort])
		if err != nil {
			return nil, curated.Errorf("playback: %v line %d", err, i+1)
		}
		entry.event.Port = ports.PortID(port)

		mask, err := strconv.ParseUint(toks[fieldMask], 0, 8)
		if err != nil {
			return nil, curated.Errorf("playback: %v line %d", err, i+1)
		}
		entry.event.Mask = uint8(mask)

		value, err := strconv.ParseUint(toks[fieldValue], 0, 8)
		if err != nil {
			return nil, curated.Errorf("playback: %v line %d", err, i+1)
		}
		entry.event.Value = uint8(value)

		entry.hash = strings.TrimSpace(toks[fieldHash])

		// assuming that cycles are listed in order in the file. update
		// endCycle with the most recent cycle every time
		plb.endCycle = entry.cycle

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

// AttachToMachine attaches the playback instance to the input system of the
// machine.
//
// Note that this will reset the machine.
func (plb *Playback) AttachToMachine(m *hardware.Machine) error {
	if m == nil {
		return curated.Errorf("playback: no machine available")
	}

	// keep it simple and disallow any difference in the CIA revision
	if m.Env.Prefs.Revision.String() != plb.Revision {
		return curated.Errorf("playback: recording was made with the %s revision. trying to playback with the %s revision", plb.Revision, m.Env.Prefs.Revision.String())
	}

	err := m.Input.AttachPlayback(plb)
	if err != nil {
		return curated.Errorf("playback: %v", err)
	}

	plb.m = m
	plb.seqCt = 0
	plb.digest = digest.NewRegisters(m)

	m.Reset()
	m.AttachPeripheral(plb.digest)

	return nil
}

// Sentinal error returned by GetPlayback if a hash error is encountered.
const (
	PlaybackHashError = "playback: unexpected state at line %d (cycle %d)"
)

// GetPlayback implements the input.EventPlayback interface.
func (plb *Playback) GetPlayback(cycle uint64) ([]input.Event, error) {
	var evs []input.Event

	for plb.seqCt < len(plb.sequence) {
		entry := plb.sequence[plb.seqCt]
		if entry.cycle != cycle {
			break
		}
		plb.seqCt++

		if entry.hash != plb.digest.Hash() {
			return nil, curated.Errorf(PlaybackHashError, entry.line, cycle)
		}

		evs = append(evs, entry.event)
	}

	return evs, nil
}

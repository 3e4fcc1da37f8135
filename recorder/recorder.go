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
	"io"
	"os"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/digest"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/input"
)

// Recorder transcribes input events to a file. It implements the
// input.EventRecorder interface.
type Recorder struct {
	m      *hardware.Machine
	output io.WriteCloser
	digest *digest.Registers
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
// The machine is reset and the recorder is attached to it.
func NewRecorder(transcript string, m *hardware.Machine) (*Recorder, error) {
	f, err := os.Create(transcript)
	if err != nil {
		return nil, curated.Errorf("recorder: %v", err)
	}

	rec := &Recorder{
		m:      m,
		output: f,
		digest: digest.NewRegisters(m),
	}

	err = writeHeader(rec.output, m.Env.Prefs.Revision.String())
	if err != nil {
		rec.output.Close()
		return nil, err
	}

	err = m.Input.AttachRecorder(rec)
	if err != nil {
		rec.output.Close()
		return nil, curated.Errorf("recorder: %v", err)
	}

	m.Reset()
	m.AttachPeripheral(rec.digest)

	return rec, nil
}

// End the recording. The recorder is detached from the machine and the file
// is closed.
func (rec *Recorder) End() error {
	_ = rec.m.Input.AttachRecorder(nil)
	rec.m.DetachPeripheral(rec.digest)

	if err := rec.output.Close(); err != nil {
		return curated.Errorf("recorder: %v", err)
	}

	return nil
}

// RecordEvent implements the input.EventRecorder interface.
func (rec *Recorder) RecordEvent(ev input.TimedEvent) error {
	line := fmt.Sprintf("%d%s%d%s%d%s%#02x%s%#02x%s%s\n",
		ev.Cycle, fieldSep,
		ev.Chip, fieldSep,
		int(ev.Port), fieldSep,
		ev.Mask, fieldSep,
		ev.Value, fieldSep,
		rec.digest.Hash(),
	)

	n, err := io.WriteString(rec.output, line)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}
	if n != len(line) {
		return curated.Errorf("recorder: output truncated")
	}

	return nil
}

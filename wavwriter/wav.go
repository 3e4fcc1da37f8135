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

// Package wavwriter allows the PB6 and PB7 pins of a CIA to be recorded to
// disk as a WAV file. The timers can drive these pins and so the recording
// is a way of hearing (or inspecting with an audio editor) the timer output.
//
// Note that audio data is buffered in memory in its entirity, and written to
// disk when Close() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/hardware/cia/ports"
	"github.com/jetsetilly/gopher6526/logger"
	"github.com/jetsetilly/gopher6526/paths"
	"github.com/youpy/go-wav"
)

// SampleFreq is the sample rate of the WAV file.
const SampleFreq = 44100

// the pins of port B that are recorded.
const (
	pb6 = 0x40
	pb7 = 0x80
)

// WavWriter implements the ports.Monitor and hardware.Peripheral interfaces.
type WavWriter struct {
	env      *environment.Environment
	filename string
	buffer   []wav.Sample

	// most recent value of port B
	portB uint8

	// the number of cycles per sample
	regulator   int
	regulatorCt int
}

// New is the preferred method of initialisation for the WavWriter type. If
// filename is empty a unique filename is generated.
func New(env *environment.Environment, filename string) (*WavWriter, error) {
	if filename == "" {
		filename = paths.UniqueFilename("pins", "") + ".wav"
	}

	aw := &WavWriter{
		env:      env,
		filename: filename,
		buffer:   make([]wav.Sample, 0),
		portB:    pb6 | pb7,
	}

	aw.regulator = env.Prefs.Clock.Get().(int) / SampleFreq
	if aw.regulator < 1 {
		return nil, curated.Errorf("wavwriter: clock is slower than the sample rate")
	}

	return aw, nil
}

// Filename returns the name of the file the WAV will be written to.
func (aw *WavWriter) Filename() string {
	return aw.filename
}

// PortChanged implements the ports.Monitor interface.
func (aw *WavWriter) PortChanged(id ports.PortID, value uint8) {
	if id == ports.PortB {
		aw.portB = value
	}
}

// Step implements the hardware.Peripheral interface.
func (aw *WavWriter) Step() {
	aw.regulatorCt++
	if aw.regulatorCt < aw.regulator {
		return
	}
	aw.regulatorCt = 0

	// unsigned 8bit samples. each pin contributes half the range
	var v int
	if aw.portB&pb6 == pb6 {
		v += 0x7f
	}
	if aw.portB&pb7 == pb7 {
		v += 0x7f
	}

	w := wav.Sample{}
	w.Values[0] = v
	aw.buffer = append(aw.buffer, w)
}

// NumSamples returns the number of samples in the buffer.
func (aw *WavWriter) NumSamples() int {
	return len(aw.buffer)
}

// Close writes the buffered samples to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 1, uint32(SampleFreq), 8)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(aw.env, "wavwriter", "writing pins to %s", aw.filename)
	if err := enc.WriteSamples(aw.buffer); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

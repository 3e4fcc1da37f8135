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
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/logger"
)

type pcmData struct {
	totalTime  float64 // in seconds
	sampleRate float64

	// data is mono data (taken from the left channel in the case of stero
	// source files), normalised to the range -1.0 to 1.0
	data []float32
}

func getPCM(env *environment.Environment, r io.ReadSeeker, filename string) (pcmData, error) {
	p := pcmData{
		data: make([]float32, 0),
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		dec := wav.NewDecoder(r)
		if dec == nil {
			return p, curated.Errorf("wav: error decoding")
		}

		if !dec.IsValidFile() {
			return p, curated.Errorf("wav: not a valid wav file")
		}

		logger.Log(env, logTag, "loading from wav file")

		// load all data at once
		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf("wav: %v", err)
		}
		floatBuf := buf.AsFloat32Buffer()

		// samples are integers of the file's bit depth
		scale := float32(1.0)
		if dec.BitDepth > 0 {
			scale = float32(int(1) << (dec.BitDepth - 1))
		}

		// copy first channel only of data stream
		numChans := int(dec.NumChans)
		if numChans < 1 {
			numChans = 1
		}
		p.data = make([]float32, 0, len(floatBuf.Data)/numChans)
		for i := 0; i < len(floatBuf.Data); i += numChans {
			p.data = append(p.data, floatBuf.Data[i]/scale)
		}

		p.sampleRate = float64(dec.SampleRate)

	case ".mp3":
		dec, err := mp3.NewDecoder(r)
		if err != nil {
			return p, curated.Errorf("mp3: %v", err)
		}

		logger.Log(env, logTag, "loading from mp3 file")

		err = nil
		chunk := make([]byte, 4096)
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf("mp3: %v", err)
			}

			// the stream is always 16bit little endian with two channels. the
			// left channel is the first two bytes of every four
			for i := 0; i+1 < chunkLen; i += 4 {
				f := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
				p.data = append(p.data, float32(f)/32768.0)
			}
		}

		p.sampleRate = float64(dec.SampleRate())

	default:
		return p, curated.Errorf("unsupported file type (%s)", filepath.Ext(filename))
	}

	if p.sampleRate <= 0 {
		return p, curated.Errorf("invalid sample rate")
	}

	p.totalTime = float64(len(p.data)) / p.sampleRate

	logger.Logf(env, logTag, "sample rate: %0.2fHz", p.sampleRate)
	logger.Logf(env, logTag, "total time: %.02fs", p.totalTime)

	return p, nil
}

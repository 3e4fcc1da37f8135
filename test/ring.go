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

package test

import (
	"fmt"
)

// RingWriter implements the io.Writer interface. Only the most recent output
// is kept, up to the size given to NewRingWriter(). Useful for capturing the
// tail of a long log.
type RingWriter struct {
	buffer []byte
	size   int

	// index of the next byte to be written. the buffer is full once the
	// cursor has wrapped
	cursor int
	full   bool
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ring writer: invalid size (%d)", size)
	}
	return &RingWriter{
		buffer: make([]byte, size),
		size:   size,
	}, nil
}

func (r *RingWriter) String() string {
	if !r.full {
		return string(r.buffer[:r.cursor])
	}
	s := make([]byte, 0, r.size)
	s = append(s, r.buffer[r.cursor:]...)
	s = append(s, r.buffer[:r.cursor]...)
	return string(s)
}

// Reset empties the ring.
func (r *RingWriter) Reset() {
	r.cursor = 0
	r.full = false
}

// Write implements the io.Writer interface.
func (r *RingWriter) Write(p []byte) (int, error) {
	n := len(p)

	// only the tail of p can survive
	if len(p) > r.size {
		p = p[len(p)-r.size:]
	}

	for len(p) > 0 {
		c := copy(r.buffer[r.cursor:], p)
		p = p[c:]
		r.cursor += c
		if r.cursor == r.size {
			r.cursor = 0
			r.full = true
		}
	}

	return n, nil
}

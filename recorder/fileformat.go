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
	"strings"

	"github.com/jetsetilly/gopher6526/curated"
)

const (
	fieldCycle int = iota
	fieldChip
	fieldPort
	fieldMask
	fieldValue
	fieldHash
	numFields
)

const fieldSep = ", "

// recording file header format
// ----------------------------
//
// gopher6526 recording
// <cia revision>

const (
	lineMagic int = iota
	lineRevision
	numHeaderLines
)

const magicString = "gopher6526 recording"

func writeHeader(output io.Writer, revision string) error {
	lines := make([]string, numHeaderLines)

	lines[lineMagic] = magicString
	lines[lineRevision] = revision

	line := fmt.Sprintf("%s\n", strings.Join(lines, "\n"))

	n, err := io.WriteString(output, line)
	if err != nil {
		return curated.Errorf("recorder: %v", err)
	}

	if n != len(line) {
		return curated.Errorf("recorder: output truncated")
	}

	return nil
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines {
		return curated.Errorf("playback: not a valid recording")
	}

	if lines[lineMagic] != magicString {
		return curated.Errorf("playback: not a valid recording")
	}

	plb.Revision = strings.TrimSpace(lines[lineRevision])

	return nil
}

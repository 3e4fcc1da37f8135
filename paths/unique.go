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

package paths

import (
	"strings"
	"time"
)

// the layout of the timestamp in a unique filename.
const timestampLayout = "20060102_150405"

// UniqueFilename creates a filename that should not collide with any existing
// file, assuming a working clock. The function does not check the filesystem.
//
// Used for pin recordings and machine dumps. The format is:
//
//	prepend_label_YYYYMMDD_HHMMSS
//
// The label and its separator are omitted if label is empty.
func UniqueFilename(prepend string, label string) string {
	parts := []string{prepend}
	if l := strings.TrimSpace(label); l != "" {
		parts = append(parts, l)
	}
	parts = append(parts, time.Now().Format(timestampLayout))
	return strings.Join(parts, "_")
}

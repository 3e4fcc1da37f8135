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

import "strings"

// CompareWriter implements the io.Writer interface. Output is collected so
// that it can be compared with an expected string.
type CompareWriter struct {
	strings.Builder
}

// Clear collected output.
func (tw *CompareWriter) Clear() {
	tw.Reset()
}

// Compare collected output with s.
func (tw *CompareWriter) Compare(s string) bool {
	return tw.String() == s
}

// Lines returns the collected output as a list of lines. The empty string
// after a final newline is not included.
func (tw *CompareWriter) Lines() []string {
	s := strings.TrimSuffix(tw.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

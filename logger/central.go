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

package logger

import (
	"io"
)

// the central log is the only log in the application. the size is enough to
// hold the register writes of several hundred cycles.
const maxCentral = 256

var central = newLogger(maxCentral)

// a nil permission is treated the same as Deny.
func allowed(perm Permission) bool {
	if perm == nil {
		return false
	}
	return perm == Allow || perm.AllowLogging()
}

// Log adds an entry to the central log. The tag is usually the name of the
// component making the entry. eg. "cia1" or "datasette".
func Log(perm Permission, tag, detail string) {
	if allowed(perm) {
		central.log(tag, detail)
	}
}

// Logf is the same as Log() but with a formatted detail string.
func Logf(perm Permission, tag, detail string, args ...interface{}) {
	if allowed(perm) {
		central.logf(tag, detail, args...)
	}
}

// Clear all entries from the central log.
func Clear() {
	central.clear()
}

// Write the contents of the central log to output.
func Write(output io.Writer) {
	central.write(output)
}

// WriteRecent writes the entries added since the previous call to
// WriteRecent().
func WriteRecent(output io.Writer) {
	central.writeRecent(output)
}

// Tail writes the most recent number of entries to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho writes new entries to output as they are added. A nil output turns
// echoing off. If writeRecent is true the entries not yet seen by
// WriteRecent() are written immediately.
func SetEcho(output io.Writer, writeRecent bool) {
	central.setEcho(output, writeRecent)
}

// BorrowLog calls f with the list of entries while the log is locked.
func BorrowLog(f func([]Entry)) {
	central.borrowLog(f)
}

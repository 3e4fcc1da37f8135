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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/gopher6526/logger"
	"github.com/jetsetilly/gopher6526/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare(""))

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	logger.Tail(tw, 2)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test2: this is another test\n"))

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestRepeatAndPermission(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Logf(logger.Allow, "cia1", "timer %c underflow", 'A')
	logger.Logf(logger.Allow, "cia1", "timer %c underflow", 'A')
	logger.Log(logger.Deny, "cia1", "never seen")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "cia1: timer A underflow (repeat x2)\n")
}

func TestRecentAndEcho(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Log(logger.Allow, "a", "1")
	logger.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "a: 1\n")

	tw.Clear()
	logger.Log(logger.Allow, "b", "2")
	logger.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "b: 2\n")

	r, err := test.NewRingWriter(12)
	test.DemandSuccess(t, err)
	logger.SetEcho(r, false)
	logger.Log(logger.Allow, "c", "3")
	logger.Log(logger.Allow, "d", "4")
	logger.SetEcho(nil, false)
	test.ExpectEquality(t, r.String(), "c: 3\nd: 4\n")

	n := 0
	logger.BorrowLog(func(e []logger.Entry) {
		n = len(e)
	})
	test.ExpectEquality(t, n, 4)
}

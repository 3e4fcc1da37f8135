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

package test_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jetsetilly/gopher6526/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, true)
	test.ExpectEquality(t, uint8(0x81), 0x80|0x01)
}

func TestExpectInequality(t *testing.T) {
	test.ExpectInequality(t, 11, 5+5)
	test.ExpectInequality(t, true, false)
}

func TestExpectApproximate(t *testing.T) {
	test.ExpectApproximate(t, 10, 11, 0.1)
	test.ExpectApproximate(t, 985248.0, 985000.0, 0.001)
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	test.ExpectEquality(t, len(tw.Lines()), 0)

	fmt.Fprintf(tw, "cycle %d\n", 1)
	fmt.Fprintf(tw, "cycle %d\n", 2)
	test.ExpectSuccess(t, tw.Compare("cycle 1\ncycle 2\n"))
	test.DemandEquality(t, len(tw.Lines()), 2)
	test.ExpectEquality(t, tw.Lines()[1], "cycle 2")

	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestDemandImplements(t *testing.T) {
	tw := test.DemandImplements[io.Writer](t, &test.CompareWriter{})
	_, err := tw.Write([]byte("ok"))
	test.ExpectSuccess(t, err)
}

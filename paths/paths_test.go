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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher6526/paths"
	"github.com/jetsetilly/gopher6526/test"
)

func TestPaths(t *testing.T) {
	// run from a temporary directory containing the base resource path so
	// that the user's config directory is untouched
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	tmp := t.TempDir()
	test.DemandSuccess(t, os.Chdir(tmp))
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Mkdir(".gopher6526", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopher6526", "foo", "bar", "baz"))

	// subdirectory has been created
	_, err = os.Stat(filepath.Join(".gopher6526", "foo", "bar"))
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopher6526", "baz"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopher6526")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("pins", "cia2")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "pins_cia2_"))
	fn = paths.UniqueFilename("pins", " ")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "pins_2"))
}

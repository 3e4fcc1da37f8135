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
	"os"
	"path/filepath"
)

// the base path for all resources when found in the current directory.
const baseResourcePath = ".gopher6526"

// the directory name used in the user's configuration directory.
const gopherConfigDir = "gopher6526"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The path to the
// subdirectory is created if it does not already exist.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}

// getBasePath returns the path for the subdirectory, creating it if
// necessary.
func getBasePath(subPth string) (string, error) {
	var base string

	if _, err := os.Stat(baseResourcePath); err == nil {
		base = baseResourcePath
	} else {
		cnf, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(cnf, gopherConfigDir)
	}

	pth := filepath.Join(base, subPth)

	if _, err := os.Stat(pth); err == nil {
		return pth, nil
	}

	if err := os.MkdirAll(pth, 0o700); err != nil {
		return "", err
	}

	return pth, nil
}

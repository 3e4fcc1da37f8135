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

// Package prefs facilitates the storage of preference values on disk. Values
// are added to a Disk instance with the Add() function under a unique key. The
// Save() and Load() functions then write and read the values to and from the
// file named when the Disk instance was created.
//
// The prefs file is a plain text file beginning with the WarningBoilerPlate
// line followed by one "key :: value" line per preference, sorted by key.
// Saving preserves entries belonging to other Disk instances using the same
// file.
//
// The command line stack allows preferences to be overridden for a single
// session. Values pushed with PushCommandLineStack() are applied by Load() in
// preference to values on disk.
package prefs

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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// a group of preferences given on the command line. values are removed from
// the group as they are used.
type group map[string]Value

// entries are of the form "key::value" separated by semi-colons.
const (
	entrySeparator = ";"
	keySeparator   = "::"
)

func parseGroup(s string) group {
	g := make(group)
	for _, e := range strings.Split(s, entrySeparator) {
		k, v, ok := strings.Cut(e, keySeparator)
		if !ok {
			continue // for loop
		}
		g[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return g
}

// String returns the group in the command line format, sorted by key.
func (g group) String() string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = fmt.Sprintf("%s%s%v", k, keySeparator, g[k])
	}
	return strings.Join(entries, entrySeparator+" ")
}

var commandLineStack []group

// PushCommandLineStack parses a command line preferences string and adds it
// as a new group. Values in the most recent group take precedence over values
// loaded from disk.
//
// The string is of the form:
//
//	cia.revision::8521; cia.tod.mains::60
//
// Malformed entries are ignored.
func PushCommandLineStack(prefs string) {
	commandLineStack = append(commandLineStack, parseGroup(prefs))
}

// PopCommandLineStack forgets the most recent group. The entries of the group
// that were never used are returned in the command line format.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}
	g := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]
	return g.String()
}

// GetCommandLinePref returns the value for the key in the most recent group.
// The value is removed from the group.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	g := commandLineStack[len(commandLineStack)-1]
	v, ok := g[key]
	if ok {
		delete(g, key)
	}
	return ok, v
}

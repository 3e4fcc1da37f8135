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

// Package terminal reads single keypresses from the controlling terminal and
// translates them into actions for the emulated machine. Terminal handling is
// provided by "github.com/pkg/term".
//
// The terminal is put into cbreak mode for the lifetime of the Keyboard. Keys
// are delivered on a channel so that the emulation loop can poll for them
// without blocking.
//
// The Keymap type is independent of the terminal and translates key values
// into Action values. The digits 1 to 8 toggle the corresponding bit of CIA1
// port A. The full list of keys is returned by Keymap.Help().
package terminal

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

package input

import (
	"github.com/jetsetilly/gopher6526/curated"
)

// PushEvent pushes an Event onto the queue. Will drop the event and return an
// error if queue is full.
//
// Safe to call from any goroutine.
func (inp *Input) PushEvent(ev Event) error {
	select {
	case inp.pushed <- ev:
	default:
		return curated.Errorf("input: pushed event queue is full: input dropped")
	}
	return nil
}

func (inp *Input) handlePushed() error {
	done := false
	for !done {
		select {
		case ev := <-inp.pushed:
			_, err := inp.HandleEvent(ev)
			if err != nil {
				return err
			}
		default:
			done = true
		}
	}
	return nil
}

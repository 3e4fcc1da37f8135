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

package terminal

import (
	"errors"
	"io"
	"time"

	"github.com/jetsetilly/gopher6526/curated"
	"github.com/pkg/term"
)

// DefaultDevice is the terminal device used when none is given to Open().
const DefaultDevice = "/dev/tty"

// the amount of time a read can block before checking for the close signal.
const readTimeout = 50 * time.Millisecond

// Keyboard reads keypresses from a terminal in cbreak mode.
type Keyboard struct {
	t *term.Term

	keys chan byte
	errs chan error

	quit chan bool
	done chan bool
}

// Open the terminal device and put it into cbreak mode. The terminal is
// restored by Close().
func Open(device string) (*Keyboard, error) {
	if device == "" {
		device = DefaultDevice
	}

	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}

	err = t.SetReadTimeout(readTimeout)
	if err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, curated.Errorf("terminal: %v", err)
	}

	kb := &Keyboard{
		t:    t,
		keys: make(chan byte, 16),
		errs: make(chan error, 1),
		quit: make(chan bool),
		done: make(chan bool),
	}

	go kb.service()

	return kb, nil
}

func (kb *Keyboard) service() {
	defer func() {
		kb.done <- true
	}()

	b := make([]byte, 1)
	for {
		select {
		case <-kb.quit:
			return
		default:
		}

		n, err := kb.t.Read(b)
		if err != nil {
			// read timeouts surface as EOF
			if errors.Is(err, io.EOF) {
				continue // for loop
			}
			kb.errs <- curated.Errorf("terminal: %v", err)
			<-kb.quit
			return
		}

		if n == 0 {
			continue // for loop
		}

		select {
		case kb.keys <- b[0]:
		default:
			// key dropped. the emulation is not keeping up
		}
	}
}

// Keys returns the channel on which keypresses are delivered.
func (kb *Keyboard) Keys() <-chan byte {
	return kb.keys
}

// Errors returns the channel on which read errors are delivered. At most one
// error is ever sent.
func (kb *Keyboard) Errors() <-chan error {
	return kb.errs
}

// Close stops reading from the terminal and restores the terminal to its
// original mode.
func (kb *Keyboard) Close() error {
	kb.quit <- true
	<-kb.done

	err := kb.t.Restore()
	if err != nil {
		_ = kb.t.Close()
		return curated.Errorf("terminal: %v", err)
	}

	err = kb.t.Close()
	if err != nil {
		return curated.Errorf("terminal: %v", err)
	}
	return nil
}

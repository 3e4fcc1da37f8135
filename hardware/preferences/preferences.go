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

// Package preferences collates the preference values used by the emulated
// hardware.
package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6526/hardware/clocks"
	"github.com/jetsetilly/gopher6526/paths"
	"github.com/jetsetilly/gopher6526/prefs"
)

// the file in the resource directory in which preferences are stored.
const prefsFile = "preferences"

// Default values.
const (
	DefaultRevision = "6526"
	DefaultMains    = clocks.PALMains
	DefaultClock    = clocks.PAL
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// revision of the CIA chips. either "6526" or "8521"
	Revision prefs.String

	// frequency of the mains supply driving the TOD clocks. 50 or 60
	Mains prefs.Int

	// frequency of the system clock in Hz
	Clock prefs.Int

	// log writes to the control and interrupt registers
	LogRegisters prefs.Bool

	// level above which a tape sample is considered high
	TapeThreshold prefs.Float
}

func (p *Preferences) String() string {
	return fmt.Sprintf("revision=%s mains=%dHz clock=%dHz", p.Revision.String(), p.Mains.Get(), p.Clock.Get())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Preferences are loaded from disk, with values on the
// command line preference stack taking precedence.
func NewPreferences() (*Preferences, error) {
	p := newPreferences()

	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}
	return p, p.attach(pth)
}

// NewPreferencesFromFile is the same as NewPreferences but uses the named
// file rather than the file in the resource directory.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := newPreferences()
	return p, p.attach(pth)
}

// NewDefaultPreferences creates a Preferences instance with default values
// that is not backed by a file. Load() and Save() have no effect.
func NewDefaultPreferences() *Preferences {
	return newPreferences()
}

func newPreferences() *Preferences {
	p := &Preferences{}

	p.Revision.SetHookPre(func(v prefs.Value) error {
		switch strings.TrimSpace(v.(string)) {
		case "6526", "8521":
			return nil
		}
		return fmt.Errorf("preferences: unknown CIA revision (%v)", v)
	})

	p.Mains.SetHookPre(func(v prefs.Value) error {
		switch v.(int) {
		case 50, 60:
			return nil
		}
		return fmt.Errorf("preferences: mains frequency must be 50 or 60 (%v)", v)
	})

	p.Clock.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("preferences: clock frequency must be positive (%v)", v)
		}
		return nil
	})

	p.TapeThreshold.SetHookPre(func(v prefs.Value) error {
		if v.(float64) < -1.0 || v.(float64) > 1.0 {
			return fmt.Errorf("preferences: tape threshold must be between -1.0 and 1.0 (%v)", v)
		}
		return nil
	})

	p.SetDefaults()

	return p
}

func (p *Preferences) attach(pth string) error {
	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return err
	}

	err = p.dsk.Add("cia.revision", &p.Revision)
	if err != nil {
		return err
	}
	err = p.dsk.Add("cia.tod.mains", &p.Mains)
	if err != nil {
		return err
	}
	err = p.dsk.Add("cia.clock", &p.Clock)
	if err != nil {
		return err
	}
	err = p.dsk.Add("cia.log.registers", &p.LogRegisters)
	if err != nil {
		return err
	}
	err = p.dsk.Add("datasette.threshold", &p.TapeThreshold)
	if err != nil {
		return err
	}

	return p.dsk.Load(true)
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.Revision.Set(DefaultRevision)
	_ = p.Mains.Set(DefaultMains)
	_ = p.Clock.Set(DefaultClock)
	_ = p.LogRegisters.Set(false)
	_ = p.TapeThreshold.Set(0.0)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

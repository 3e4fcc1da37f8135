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

package hardware

import (
	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/govern"
)

// The continueCheck() function runs after every cycle, so it can be expensive
// to do a full continue check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 1000

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every cycle and the emulation continues until it
// returns govern.Ending or govern.Initialising.
//
// A nil continueCheck function will run the machine forever.
func (m *Machine) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running, govern.Stepping:
			if err := m.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("machine: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles sets the emulation running for the specified number of cycles.
// Useful for timing tests. The continueCheck function can be nil.
func (m *Machine) RunForCycles(numCycles uint64, continueCheck func(cycle uint64) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ uint64) (govern.State, error) { return govern.Running, nil }
	}

	target := m.cycle + numCycles

	var err error

	state := govern.Running
	for m.cycle < target && state != govern.Ending {
		if err := m.Step(); err != nil {
			return err
		}

		state, err = continueCheck(m.cycle)
		if err != nil {
			return err
		}
	}

	return nil
}

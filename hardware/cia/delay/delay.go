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

package delay

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bit groups in the pipeline. The number suffix is the stage.
const (
	CountA0 uint64 = 1 << iota
	CountA1
	CountA2
	CountA3
	CountB0
	CountB1
	CountB2
	CountB3
	LoadA0
	LoadA1
	LoadA2
	LoadB0
	LoadB1
	LoadB2
	PB6Low0
	PB6Low1
	PB7Low0
	PB7Low1
	Interrupt0
	Interrupt1
	OneShotA0
	OneShotB0
	AckIcr0
	AckIcr1
	SetIcr0
	SetIcr1
	TODInt0
	TODInt1
)

// the serial and CNT groups occupy the upper half of the field.
const (
	SerInt0 uint64 = 1 << (iota + 40)
	SerInt1
	SerInt2
	SerLoad0
	SerLoad1
	SerClk0
	SerClk1
	SerClk2
	SerClk3
	Cnt0
	Cnt1
	Cnt2
)

// every bit that belongs to a group.
const groups = CountA0 | CountA1 | CountA2 | CountA3 |
	CountB0 | CountB1 | CountB2 | CountB3 |
	LoadA0 | LoadA1 | LoadA2 |
	LoadB0 | LoadB1 | LoadB2 |
	PB6Low0 | PB6Low1 |
	PB7Low0 | PB7Low1 |
	Interrupt0 | Interrupt1 |
	OneShotA0 | OneShotB0 |
	AckIcr0 | AckIcr1 |
	SetIcr0 | SetIcr1 |
	TODInt0 | TODInt1 |
	SerInt0 | SerInt1 | SerInt2 |
	SerLoad0 | SerLoad1 |
	SerClk0 | SerClk1 | SerClk2 | SerClk3 |
	Cnt0 | Cnt1 | Cnt2

// stage 0 of every group. these bits only ever come from Set() or the feed.
const stageZero = CountA0 | CountB0 | LoadA0 | LoadB0 | PB6Low0 | PB7Low0 |
	Interrupt0 | OneShotA0 | OneShotB0 | AckIcr0 | SetIcr0 | TODInt0 |
	SerInt0 | SerLoad0 | SerClk0 | Cnt0

// the mask applied after shifting.
const keep = groups &^ stageZero

// names for each bit, used by String().
var names = map[uint64]string{
	CountA0: "CountA0", CountA1: "CountA1", CountA2: "CountA2", CountA3: "CountA3",
	CountB0: "CountB0", CountB1: "CountB1", CountB2: "CountB2", CountB3: "CountB3",
	LoadA0: "LoadA0", LoadA1: "LoadA1", LoadA2: "LoadA2",
	LoadB0: "LoadB0", LoadB1: "LoadB1", LoadB2: "LoadB2",
	PB6Low0: "PB6Low0", PB6Low1: "PB6Low1",
	PB7Low0: "PB7Low0", PB7Low1: "PB7Low1",
	Interrupt0: "Interrupt0", Interrupt1: "Interrupt1",
	OneShotA0: "OneShotA0", OneShotB0: "OneShotB0",
	AckIcr0: "AckIcr0", AckIcr1: "AckIcr1",
	SetIcr0: "SetIcr0", SetIcr1: "SetIcr1",
	TODInt0: "TODInt0", TODInt1: "TODInt1",
	SerInt0: "SerInt0", SerInt1: "SerInt1", SerInt2: "SerInt2",
	SerLoad0: "SerLoad0", SerLoad1: "SerLoad1",
	SerClk0: "SerClk0", SerClk1: "SerClk1", SerClk2: "SerClk2", SerClk3: "SerClk3",
	Cnt0: "Cnt0", Cnt1: "Cnt1", Cnt2: "Cnt2",
}

// Pipeline is the delay pipeline. The zero value is an empty pipeline ready
// for use.
type Pipeline struct {
	// actions currently in flight
	Delay uint64

	// actions injected into stage 0 on every step
	Feed uint64
}

func (pl Pipeline) String() string {
	return fmt.Sprintf("delay=[%s] feed=[%s]", describe(pl.Delay), describe(pl.Feed))
}

func describe(v uint64) string {
	s := make([]string, 0, bits.OnesCount64(v))
	for v != 0 {
		b := uint64(1) << bits.TrailingZeros64(v)
		if n, ok := names[b]; ok {
			s = append(s, n)
		}
		v &^= b
	}
	return strings.Join(s, " ")
}

// Step advances every action in the pipeline by one stage and injects the
// feed into stage 0. Should be called once per cycle after all sub-systems
// have consulted the pipeline.
func (pl *Pipeline) Step() {
	pl.Delay = ((pl.Delay << 1) & keep) | pl.Feed
}

// Is returns true if any of the bits are in the pipeline.
func (pl *Pipeline) Is(bits uint64) bool {
	return pl.Delay&bits != 0
}

// Set adds the bits to the pipeline.
func (pl *Pipeline) Set(bits uint64) {
	pl.Delay |= bits
}

// Clear removes the bits from the pipeline.
func (pl *Pipeline) Clear(bits uint64) {
	pl.Delay &^= bits
}

// Feeding returns true if any of the bits are in the feed.
func (pl *Pipeline) Feeding(bits uint64) bool {
	return pl.Feed&bits != 0
}

// SetFeed adds bits to the feed.
func (pl *Pipeline) SetFeed(bits uint64) {
	pl.Feed |= bits
}

// ClearFeed removes bits from the feed.
func (pl *Pipeline) ClearFeed(bits uint64) {
	pl.Feed &^= bits
}

// Reset empties the pipeline and the feed.
func (pl *Pipeline) Reset() {
	pl.Delay = 0
	pl.Feed = 0
}

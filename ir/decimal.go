// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

import "tapestat/tape"

// LongDivision divides the current cell (a binary byte, 0-255) by ten in
// place, leaving the remainder in the current cell and depositing the
// quotient at quotientOffset. It uses quotientOffset+1 through
// quotientOffset+5 as scratch, all restored to zero before it returns.
//
// The division runs the current cell down to zero one unit at a time,
// tallying units into a countdown cell primed to 10: every time the
// tally reaches zero it marks a complete group of ten, so the running
// total of units seen since the last group is the remainder, and the
// number of completed groups is the quotient. Because the tally only
// ever reaches zero by unit decrements from a known-positive value, the
// "tally hit zero" event can't be tested directly — loops here only
// test nonzero — so each iteration primes a flag to 1, clears it if a
// preserved copy of the tally is still nonzero, and acts on whatever
// flag value survives.
func LongDivision(quotientOffset int) Item {
	remOffset := quotientOffset + 1
	tallyOffset := quotientOffset + 2
	flagOffset := quotientOffset + 3
	probeOffset := quotientOffset + 4

	step := Sequence(
		Direct(tape.Dec),
		OffsetMoves(remOffset, Direct(tape.Inc)),
		OffsetMoves(tallyOffset, Direct(tape.Dec)),
		OffsetMoves(flagOffset, Direct(tape.Inc)),
		OffsetMoves(tallyOffset, Sequence(
			CopyPreserving(probeOffset-tallyOffset),
			OffsetMoves(probeOffset-tallyOffset, ZeroCheck(
				OffsetMoves(flagOffset-probeOffset, Direct(tape.Dec)),
			)),
		)),
		OffsetMoves(flagOffset, ZeroCheck(Sequence(
			OffsetMoves(tallyOffset-flagOffset, Repeat(Direct(tape.Inc), 10)),
			OffsetMoves(remOffset-flagOffset, ZeroCell()),
			OffsetMoves(quotientOffset-flagOffset, Direct(tape.Inc)),
		))),
	)

	return Sequence(
		OffsetMoves(tallyOffset, Repeat(Direct(tape.Inc), 10)),
		Loop(false, step),
		OffsetMoves(remOffset, Drain(-remOffset)),
		OffsetMoves(tallyOffset, ZeroCell()),
	)
}

// DecimalFromByte converts the current cell from a raw binary byte into
// three decimal digit cells holding its base-10 representation, least
// significant digit first: the current cell becomes the units digit,
// +1 the tens digit, +2 the hundreds digit. pcapstats uses it to print
// each destination record's one-byte checksum key; its counters are
// printed with DisplayCounterDigits instead.
func DecimalFromByte() Item {
	return Sequence(
		LongDivision(1),
		OffsetMoves(1, LongDivision(1)),
	)
}

// DisplayDecimal prints width decimal digit cells as ASCII, most
// significant digit first, assuming the current cell holds the least
// significant digit (offset 0) and each more significant digit sits at
// the next offset up — the layout DecimalFromByte produces. Printing is
// nondestructive: each digit cell is biased up to its ASCII codepoint,
// written, and restored.
func DisplayDecimal(width int) Item {
	items := make([]Item, 0, width)
	for offset := width - 1; offset >= 0; offset-- {
		items = append(items, OffsetMoves(offset, displayDigit()))
	}
	return Sequence(items...)
}

const asciiZero = '0'

func displayDigit() Item {
	return Sequence(
		Repeat(Direct(tape.Inc), asciiZero),
		Direct(tape.Output),
		Repeat(Direct(tape.Dec), asciiZero),
	)
}

// DisplayCounterDigits prints a width-digit NumericOperation-family counter
// (see Operate) as ASCII, most significant digit first, assuming the
// current cell is the counter's level-0 carry/borrow-in cell — i.e. the
// position Operate itself expects. Each digit lives at groupWidth cells
// from the last, at the group's +1 offset, per the digit group layout
// documented on groupWidth. Printing is nondestructive.
func DisplayCounterDigits(width int) Item {
	items := make([]Item, 0, width)
	for level := width - 1; level >= 0; level-- {
		items = append(items, OffsetMoves(level*groupWidth+1, displayDigit()))
	}
	return Sequence(items...)
}

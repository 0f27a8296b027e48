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

// Lists in this package are zero-terminated sequences of fixed-width
// records on the tape: record N's first field is nonzero for a live
// entry, and the scan stops at the first record whose first field reads
// zero (freshly grown tape cells start at zero, so an empty list or an
// open slot at the end needs no explicit initialization). This mirrors
// the accumulation helpers the original implementation's main routine
// used to track distinct destination addresses and their counts.

// ScanList walks a zero-terminated, fixed-width-record list starting at
// the current cell (record 0's first field), running perRecord once per
// live record with the head positioned on that record's first field, and
// stopping — with the head left on the terminator's first field — the
// first time a record's first field reads zero. perRecord must return
// the head to the position it started at.
func ScanList(recordWidth int, perRecord Item) Item {
	return Loop(false, perRecord, Repeat(Direct(tape.Right), recordWidth))
}

// AppendToList scans to the end of a zero-terminated, fixed-width-record
// list starting at the current cell, then runs writeFields with the head
// on the new record's first field. writeFields is responsible for
// writing every field of the record; the record immediately after it is
// left as the list's new terminator for free, since it is either
// previously-unvisited (zero) tape or the list's prior terminator.
func AppendToList(recordWidth int, writeFields Item) Item {
	return Sequence(seekListEnd(recordWidth), writeFields)
}

func seekListEnd(recordWidth int) Item {
	return Loop(false, Repeat(Direct(tape.Right), recordWidth))
}

// Record-relative offsets for a ListLookupOrInsert record's fields,
// relative to that record's own presence field (offset 0, the field
// ScanList tests):
//
//	steps(-3) searching(-2) keyCarry(-1) presence(0) key(+1)
//	scratchA(+2) scratchB(+3) scratchC(+4) scratchD(+5) scratchGate(+6)
//	scratchGateHelper(+7) flag(+8) countBase(+9 .. +9+4*CountWidth-1)
//
// This fixed shape is what lets ListLookupOrInsert be a single reusable
// helper across different lists: every record reserves the same ten
// bookkeeping cells in the same place, so the carry-forward walk below
// never needs to know anything about the list's key beyond its width
// (one byte).
const (
	relSteps             = -3
	relSearching         = -2
	relKeyCarry          = -1
	relPresence          = 0
	relKey               = 1
	relScratchA          = 2
	relScratchB          = 3
	relScratchC          = 4
	relScratchD          = 5
	relScratchGate       = 6
	relScratchGateHelper = 7
	relFlag              = 8
	relCountBase         = 9
)

// ListRecordLayout is a ListLookupOrInsert list's record geometry, for
// callers that need to read a record's fields directly (for example, to
// print it) instead of only ever finding-or-inserting into it.
type ListRecordLayout struct {
	// Width is the total width of one record, in cells.
	Width int
	// KeyOffset is a record's one-byte key field, relative to its
	// presence field.
	KeyOffset int
	// CountOffset is a record's count field, relative to its presence
	// field: CountWidth decimal digit groups (see Operate/DisplayCounterDigits).
	CountOffset int
	// CountWidth is the number of decimal digits in a record's count.
	CountWidth int
}

// NewListRecordLayout returns the record geometry ListLookupOrInsert uses
// for a list whose occurrence count is countWidth decimal digits wide.
func NewListRecordLayout(countWidth int) ListRecordLayout {
	return ListRecordLayout{
		Width:       12 + 4*countWidth,
		KeyOffset:   relKey,
		CountOffset: relCountBase,
		CountWidth:  countWidth,
	}
}

// ListLookupOrInsert finds, or inserts, the record whose key matches the
// current cell's value in a zero-terminated, fixed-width-record list, and
// increments that record's occurrence count by one either way. Recovered
// and generalized, per the original implementation's append_to_list and
// its ListEntry layout, from the one-off version pcapstats's first draft
// hard-coded inline.
//
// keyOffset is the current packet's one-byte key cell, and listOffset is
// the list's 3-cell carry-forward seed (steps, searching, keyCarry;
// immediately followed by the list's first record), both expressed as
// offsets from the current cell. The head is restored to its starting
// position when this returns.
//
// Because every record is processed by the same static Item tree
// regardless of how many list entries already exist, there is no way to
// address "the record at the point the previous scan stopped" directly:
// the tape machine only ever tests "is the current cell nonzero", so an
// unbounded rightward search has to carry its state along with it one
// record at a time, not jump to it. Three fields travel this way, each
// living at the same relative offset in every record and moving forward
// by exactly one record's width per step, via Drain:
//
//   - searching: 1 while no match has been found yet, 0 once one has (or
//     once a fresh record position is reached with nothing left to find).
//   - keyCarry: the key this lookup is searching for, valid only while
//     searching is nonzero.
//   - steps: how many records have been visited so far. Once the scan
//     reaches the terminator, steps holds the total list length, which is
//     exactly the number of record-widths a plain leftward walk needs to
//     retrace to get back to the list's start — the only way back, since
//     the tape machine has no absolute addressing either.
func ListLookupOrInsert(keyOffset, listOffset, countWidth int) Item {
	layout := NewListRecordLayout(countWidth)
	carrySearching := listOffset + 1
	carryKeyCarry := listOffset + 2
	listBase := listOffset + 3
	return Sequence(
		OffsetMoves(keyOffset, Drain(carryKeyCarry-keyOffset)), // key -> record 0's keyCarry
		OffsetMoves(carrySearching, Direct(tape.Inc)),          // record 0's searching = 1
		Repeat(Direct(tape.Right), listBase),
		ScanList(layout.Width, scanOneListRecord(layout)),
		// head is now on the terminator's presence field.
		appendListRecordIfNotFound(layout),
		// a match leaves the key in the terminator's keyCarry; clear it so
		// the next lookup's Drain into that cell starts from zero.
		listAt(relPresence, relKeyCarry, ZeroCell()),
		Repeat(Direct(tape.Left), 3), // terminator's own steps field
		// carry the remaining count one record left on every step, so the
		// loop keeps testing a cell that holds it.
		Loop(false, Direct(tape.Dec), Drain(-layout.Width), Repeat(Direct(tape.Left), layout.Width)),
		Repeat(Direct(tape.Left), listOffset),
	)
}

func listAt(from, to int, item Item) Item {
	return OffsetMoves(to-from, item)
}

func scanOneListRecord(layout ListRecordLayout) Item {
	countWidth := layout.CountWidth
	recordWidth := layout.Width
	return Sequence(
		listAt(relPresence, relSearching, CopyPreserving(relScratchGate-relSearching)),
		listAt(relPresence, relScratchGate, ZeroCheck(Sequence(
			listAt(relScratchGate, relKey, CopyPreserving(relScratchA-relKey)),
			listAt(relScratchGate, relKeyCarry, CopyPreserving(relScratchC-relKeyCarry)),
			listAt(relScratchGate, relScratchA, DrainSub(relScratchC-relScratchA)),
			listAt(relScratchGate, relFlag, Direct(tape.Inc)),
			listAt(relScratchGate, relScratchC, ZeroCheck(listAt(relScratchC, relFlag, Direct(tape.Dec)))),
			listAt(relScratchGate, relFlag, ZeroCheck(Sequence(
				listAt(relFlag, relCountBase, Operate(DecimalAdd(countWidth))),
				listAt(relFlag, relSearching, ZeroCell()),
			))),
		))),
		listAt(relPresence, relSearching, Drain(recordWidth)),
		listAt(relPresence, relKeyCarry, Drain(recordWidth)),
		listAt(relPresence, relSteps, Sequence(Direct(tape.Inc), Drain(recordWidth))),
	)
}

func appendListRecordIfNotFound(layout ListRecordLayout) Item {
	countWidth := layout.CountWidth
	return listAt(relPresence, relSearching, ZeroCheck(Sequence(
		listAt(relSearching, relPresence, Direct(tape.Inc)),
		listAt(relSearching, relKeyCarry, Drain(relKey-relKeyCarry)),
		listAt(relSearching, relCountBase, Operate(DecimalAdd(countWidth))),
	)))
}

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

import (
	"fmt"

	"tapestat/tape"
)

// NumericOperation parameterizes the recursive multi-digit add/sub macro
// family. Operate drives a single NumericOperation across every digit
// position a counter has, entirely at build time: Width is known when
// the Item tree is built, so the carry/borrow chain is unrolled by plain
// Go recursion rather than tracked by a runtime counter cell.
//
// Every concrete operation here adds or subtracts exactly one unit from
// the counter's least significant digit and lets that ripple outward —
// this is the "increment/decrement a multi-digit counter" macro family
// pcapstats uses to tally packets and bytes, not a general two-operand
// adder.
type NumericOperation interface {
	// Name identifies the operation for comments in the lowered
	// program, e.g. "decimal-add" or "byte-sub".
	Name() string

	// ZeroCheckFirst reports whether a digit position should be skipped
	// once the carry/borrow reaching it has gone to zero — sound
	// because every concrete Operation below is a no-op on a zero
	// carry/borrow, so nothing past that point needs visiting.
	ZeroCheckFirst() bool

	// Width is the number of digit positions this operation spans.
	Width() int

	// Operation returns the Item that updates digit position level
	// (0 = least significant), assuming the tape head sits on that
	// digit's own carry/borrow-in cell (not the counter's external
	// reference cell — operateLevel moves there before running this)
	// and leaving the head there again when it returns. It deposits the
	// digit's carry/borrow out into the next position's carry/borrow-in
	// cell.
	Operation(level int) Item

	// ZeroReset returns the Item that primes the operation before its
	// first digit runs — conventionally, setting digit 0's carry/borrow
	// cell to 1, since Operate always performs exactly one unit of
	// add or subtract.
	ZeroReset() Item
}

// Operate lowers op across every one of its digit positions, least
// significant digit first, wrapped in a comment naming the operation.
// A carry or borrow surviving past the most significant digit means
// Width was too narrow for the result, so Operate halts rather than let
// it silently spill into whatever tape cell follows the counter.
func Operate(op NumericOperation) Item {
	return Comment(op.Name(), 1, Sequence(
		op.ZeroReset(),
		operateLevel(op, 0),
		OffsetMoves(op.Width()*groupWidth, ZeroCheck(Halt(fmt.Sprintf("%s: arithmetic overflow", op.Name())))),
	))
}

func operateLevel(op NumericOperation, level int) Item {
	if level >= op.Width() {
		return Sequence()
	}
	// The zero-check (when requested) must test this digit's own
	// carry/borrow-in cell, not whatever cell the head happened to be
	// on before this level started — so the move to the digit group
	// wraps the check, not the other way around.
	inner := op.Operation(level)
	if op.ZeroCheckFirst() {
		inner = ZeroCheck(inner)
	}
	step := digitGroup(level, inner)
	return Sequence(step, operateLevel(op, level+1))
}

// Digit group layout shared by every concrete NumericOperation below:
// each digit position occupies a fixed-width group of cells, addressed
// relative to the group's first cell (its carry/borrow-in cell):
//
//	+0  carry / borrow in, consumed by this digit and never read again
//	+1  the digit itself, updated in place
//	+2  scratch: a nonzero-preserving probe, left at zero
//	+3  scratch: a transient duplicate used to restore the probed cell
//
// groupWidth separates consecutive digit levels, so digit level's
// carry/borrow-out is exactly digit (level+1)'s carry/borrow-in — four
// cells further along.
const groupWidth = 4

func digitGroup(level int, item Item) Item {
	return OffsetMoves(level*groupWidth, item)
}

// CopyPreserving copies the current cell's value into the cell at
// probeOffset, leaving the current cell unchanged, using the cell at
// probeOffset+1 as a transient second copy so the original survives the
// round trip through Drain (which is otherwise destructive).
func CopyPreserving(probeOffset int) Item {
	return Sequence(
		Drain(probeOffset, probeOffset+1),
		OffsetMoves(probeOffset+1, Drain(-(probeOffset+1))),
	)
}

// digitStep builds one digit position's add-or-subtract-one-with-carry
// logic for base (10 for decimal digits, or a reduced base for byte
// digits — see ByteAdd's doc comment). direction is +1 to add, -1 to
// subtract. It assumes the head sits on the digit's carry/borrow-in cell
// and leaves it there when done.
func digitStep(base, direction int) Item {
	applyIncoming := Drain(1)
	if direction < 0 {
		applyIncoming = DrainSub(1)
	}

	// probeTransform maps the probe copy's two possible post-apply
	// values onto a clean zero boundary at exactly the
	// overflow/underflow case: for add, the lone overflow value is
	// base itself, so subtracting base lands it on zero while every
	// in-range digit ([0,base-1]) wraps to a nonzero high byte. For
	// subtract, the lone underflow value is 255 (a wrapped -1), so
	// adding 1 lands it on zero while every in-range digit lands on
	// [1,base].
	probeTransform := Repeat(Direct(tape.Dec), base)
	// digitCorrection is the actual fix for the main digit, valid only
	// in the overflow/underflow case: for add, subtracting base turns
	// the boundary value base into 0. For subtract, adding base turns
	// the wrapped -1 (255) into base-1 (9 for base 10) — the wrapped
	// byte is exactly base short of that target.
	digitCorrection := Repeat(Direct(tape.Dec), base)
	// undo reverses digitCorrection, run when the probe shows this
	// wasn't actually the overflow/underflow case.
	undo := Repeat(Direct(tape.Inc), base)
	if direction < 0 {
		probeTransform = Direct(tape.Inc)
		digitCorrection = Repeat(Direct(tape.Inc), base)
		undo = Repeat(Direct(tape.Dec), base)
	}

	return Sequence(
		applyIncoming,
		OffsetMoves(1, Sequence(
			CopyPreserving(1),
			digitCorrection,
			OffsetMoves(1, probeTransform),
			OffsetMoves(3, Direct(tape.Inc)), // pre-seed carry/borrow-out
			OffsetMoves(1, ZeroCheck(Sequence(
				OffsetMoves(-1, undo),
				OffsetMoves(2, Direct(tape.Dec)),
			))),
		)),
	)
}

// DrainSub decrements the current cell to zero, decrementing the cell at
// target once for every decrement here — the subtraction-flavored
// counterpart of Drain, which only ever increments its targets.
func DrainSub(target int) Item {
	return Loop(false, Direct(tape.Dec), OffsetMoves(target, Direct(tape.Dec)))
}

// DecimalAdd adds one to a width-digit decimal counter, propagating a
// carry through each position the way incrementing a paper odometer
// does: a digit that reaches 10 resets to 0 and carries 1 into the next
// position; every other digit simply increments and stops the chain.
func DecimalAdd(width int) NumericOperation { return decimalCounter{width: width, direction: 1} }

// DecimalSub subtracts one from a width-digit decimal counter,
// propagating a borrow the way decrementing a paper odometer does: a
// digit that goes below 0 resets to 9 and borrows 1 from the next
// position.
func DecimalSub(width int) NumericOperation { return decimalCounter{width: width, direction: -1} }

type decimalCounter struct {
	width     int
	direction int
}

func (d decimalCounter) Name() string {
	if d.direction > 0 {
		return "decimal-add"
	}
	return "decimal-sub"
}
func (d decimalCounter) ZeroCheckFirst() bool { return true }
func (d decimalCounter) Width() int           { return d.width }
func (d decimalCounter) ZeroReset() Item      { return Direct(tape.Inc) }

func (d decimalCounter) Operation(int) Item {
	return digitStep(10, d.direction)
}

// ByteAdd adds one to a width-digit base-255 byte counter, and ByteSub
// subtracts one. Each digit reserves the single value 255 as its
// overflow/underflow boundary rather than using the full 0-255 range a
// byte cell can hold, so every digit position shares exactly the same
// add/subtract-with-carry macro as the decimal family — trading one
// representable value per digit for a uniform, already-proven circuit.
// Counters built from this family (packet and byte tallies) have no
// reason to need the full native range of every limb to make this worth
// complicating.
func ByteAdd(width int) NumericOperation { return byteCounter{width: width, direction: 1} }

// ByteSub subtracts one from a width-digit base-255 byte counter. See
// ByteAdd.
func ByteSub(width int) NumericOperation { return byteCounter{width: width, direction: -1} }

type byteCounter struct {
	width     int
	direction int
}

func (b byteCounter) Name() string {
	if b.direction > 0 {
		return "byte-add"
	}
	return "byte-sub"
}
func (b byteCounter) ZeroCheckFirst() bool { return true }
func (b byteCounter) Width() int           { return b.width }
func (b byteCounter) ZeroReset() Item      { return Direct(tape.Inc) }

func (b byteCounter) Operation(int) Item {
	return digitStep(255, b.direction)
}

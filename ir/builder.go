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

// move appends n copies of Right (n > 0) or -n copies of Left (n < 0).
func move(n int) Item {
	if n == 0 {
		return Sequence()
	}
	if n > 0 {
		return Repeat(Direct(tape.Right), n)
	}
	return Repeat(Direct(tape.Left), -n)
}

// OffsetMoves runs item with the tape head shifted by offset cells (right
// for positive, left for negative), then restores the head to its original
// position before returning. Nesting OffsetMoves composes: the inner
// item only ever sees positions relative to where its caller left the
// head.
func OffsetMoves(offset int, item Item) Item {
	return Sequence(move(offset), item, move(-offset))
}

// ZeroCell clears the current cell by repeated decrement, looping until
// the cell reads zero. It assumes the cell's value is reached by
// decrementing (i.e. it is "positive" in the sense the program uses it);
// ZeroCellUp is its increment-driven counterpart for cells approached
// from the other side of the wraparound.
func ZeroCell() Item {
	return Loop(false, Direct(tape.Dec))
}

// ZeroCellUp clears the current cell by repeated increment. Used where a
// value is known to be reached more directly from below (e.g. a byte that
// is the two's-complement-style result of a borrow), so incrementing to
// zero touches fewer cells than decrementing would.
func ZeroCellUp() Item {
	return Loop(false, Direct(tape.Inc))
}

// Drain empties the current cell into one or more target cells, each
// given as an offset from the current position, by the classic
// `[- target+ target+ ... back]` pattern: for every unit subtracted from
// the source, one unit is added at each target, in order, and the head
// returns to the source position before the loop re-tests it. The source
// cell is zero when Drain returns.
func Drain(targets ...int) Item {
	body := make([]Item, 0, len(targets)*2+1)
	body = append(body, Direct(tape.Dec))
	for _, t := range targets {
		body = append(body, OffsetMoves(t, Direct(tape.Inc)))
	}
	return Loop(false, body...)
}

// ZeroCheck evaluates item only if the current cell is nonzero, then
// clears that cell with ZeroCell, so the cell reads zero afterwards
// either way (item must return the head to it); it is the building block
// NumericOperation implementations use for their ZeroCheckFirst option,
// where a digit pair's carry/borrow chain can stop early once a digit
// position no longer needs propagating past.
func ZeroCheck(item Item) Item {
	return Loop(false, item, ZeroCell())
}

// FindZeroCellRight moves the tape head rightward, one cell at a time,
// while the current cell is nonzero, stopping on the first zero cell it
// reaches. This is the only rightward search a real tape machine can
// express without first mutating the cells it passes over (a loop body
// can only test "is the current cell nonzero"), so every zero-terminated
// structure in this repo — the list package's element lists included —
// uses zero, not some other sentinel value, as its end marker.
func FindZeroCellRight() Item {
	return Loop(false, Direct(tape.Right))
}

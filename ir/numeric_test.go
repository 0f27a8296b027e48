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

package ir_test

import (
	"strings"
	"testing"

	"tapestat/ir"
	"tapestat/tape"
)

// digitsAt reads width decimal digit cells, least significant first,
// starting at the counter's base position (its level-0 carry/borrow-in
// cell): level L's digit lives at L*4+1, matching numeric.go's group
// layout.
func digitsAt(t *testing.T, view tape.TapeView, base, width int) []byte {
	t.Helper()
	digits := make([]byte, width)
	for level := 0; level < width; level++ {
		digits[level] = view.At(base + level*4 + 1)
	}
	return digits
}

func digitsToString(digits []byte) string {
	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte('0' + digits[i])
	}
	return b.String()
}

func runItem(t *testing.T, item ir.Item) (*tape.Interpreter, error) {
	t.Helper()
	program, err := ir.Build(item)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var out strings.Builder
	var diag strings.Builder
	interp := tape.New(program, strings.NewReader(""), &out, &diag)
	return interp, interp.Run()
}

// S6: invoking DecimalAdd<8> 42 times on a fresh counter yields "00000042"
// and leaves the head where it started.
func TestDecimalAddFortyTwoTimes(t *testing.T) {
	const width = 8
	item := ir.Repeat(ir.Operate(ir.DecimalAdd(width)), 42)

	interp, err := runItem(t, item)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.Position(); got != 0 {
		t.Fatalf("head moved: expected 0, got %d", got)
	}
	digits := digitsAt(t, interp.View(), 0, width)
	if got := digitsToString(digits); got != "00000042" {
		t.Fatalf("expected 00000042, got %s", got)
	}
}

// P6: DecimalAdd followed by DecimalSub restores both the digit layout and
// the tape pointer, for a nonzero starting value.
func TestDecimalAddSubInverse(t *testing.T) {
	const width = 4
	// Prime the counter to 307 before exercising add/sub, so the
	// scenario isn't limited to the trivial all-zero starting point.
	item := ir.Sequence(
		ir.OffsetMoves(1, ir.Repeat(ir.Direct(tape.Inc), 7)),
		ir.OffsetMoves(9, ir.Repeat(ir.Direct(tape.Inc), 3)),
		ir.Operate(ir.DecimalAdd(width)),
		ir.Operate(ir.DecimalSub(width)),
	)

	interp, err := runItem(t, item)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.Position(); got != 0 {
		t.Fatalf("head moved: expected 0, got %d", got)
	}
	digits := digitsAt(t, interp.View(), 0, width)
	if got := digitsToString(digits); got != "0307" {
		t.Fatalf("expected 0307, got %s", got)
	}
}

// P5: when the counter's width can't hold the result, DecimalAdd halts
// with an arithmetic-overflow diagnostic instead of silently corrupting
// whatever tape cell follows it.
func TestDecimalAddOverflowHalts(t *testing.T) {
	item := ir.Sequence(
		ir.OffsetMoves(1, ir.Repeat(ir.Direct(tape.Inc), 9)),
		ir.Operate(ir.DecimalAdd(1)),
	)

	_, err := runItem(t, item)
	if err == nil {
		t.Fatal("expected an arithmetic overflow error, got nil")
	}
	if !strings.Contains(err.Error(), "arithmetic overflow") {
		t.Fatalf("expected an arithmetic overflow diagnostic, got: %v", err)
	}
}

// Carry must actually ripple into the next digit position, not just reset
// the overflowing digit: 19 + 1 should become 20, not 01.
func TestDecimalAddCarriesAcrossDigits(t *testing.T) {
	const width = 2
	item := ir.Sequence(
		ir.OffsetMoves(1, ir.Repeat(ir.Direct(tape.Inc), 9)),
		ir.OffsetMoves(5, ir.Repeat(ir.Direct(tape.Inc), 1)),
		ir.Operate(ir.DecimalAdd(width)),
	)

	interp, err := runItem(t, item)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	digits := digitsAt(t, interp.View(), 0, width)
	if got := digitsToString(digits); got != "20" {
		t.Fatalf("expected 20, got %s", got)
	}
}

// The byte-digit family uses the same circuit with base 255; exercise a
// carry out of one digit's overflow boundary into the next (a width-1
// counter would instead hit the arithmetic-overflow halt, since there is
// no further digit to carry into).
func TestByteAddSubCarriesAcrossDigits(t *testing.T) {
	const width = 2
	item := ir.Sequence(
		ir.OffsetMoves(1, ir.Repeat(ir.Direct(tape.Inc), 254)),
		ir.Operate(ir.ByteAdd(width)),
	)
	interp, err := runItem(t, item)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.View().At(1); got != 0 {
		t.Fatalf("expected digit 0 to wrap to 0 at the 255 boundary, got %d", got)
	}
	if got := interp.View().At(5); got != 1 {
		t.Fatalf("expected the carry to land digit 1 on 1, got %d", got)
	}

	item = ir.Sequence(
		ir.OffsetMoves(5, ir.Repeat(ir.Direct(tape.Inc), 1)),
		ir.Operate(ir.ByteSub(width)),
	)
	interp, err = runItem(t, item)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.View().At(1); got != 254 {
		t.Fatalf("expected digit 0 to borrow back down to 254, got %d", got)
	}
	if got := interp.View().At(5); got != 0 {
		t.Fatalf("expected digit 1 to borrow back down to 0, got %d", got)
	}
}

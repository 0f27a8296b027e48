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

package tape_test

import (
	"strings"
	"testing"

	"tapestat/tape"
)

func build(t *testing.T, src string) *tape.Program {
	t.Helper()
	actions, err := tape.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	program, err := tape.Build(actions)
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	return program
}

// S1: `,.` with input 0x41 emits 0x41 and leaves cell 0 = 0x41.
func TestScenarioEchoOneByte(t *testing.T) {
	program := build(t, ",.")
	var out strings.Builder
	interp := tape.New(program, strings.NewReader("\x41"), &out, &strings.Builder{})
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "\x41" {
		t.Fatalf("expected output 0x41, got %q", out.String())
	}
	if got := interp.View().At(0); got != 0x41 {
		t.Fatalf("expected cell 0 = 0x41, got %d", got)
	}
}

// S2: `,[.,]` with input HELLO followed by a zero byte emits HELLO.
func TestScenarioEchoUntilZero(t *testing.T) {
	program := build(t, ",[.,]")
	var out strings.Builder
	interp := tape.New(program, strings.NewReader("HELLO\x00"), &out, &strings.Builder{})
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "HELLO" {
		t.Fatalf("expected HELLO, got %q", out.String())
	}
}

// S3: `+++[>++<-]>.` (multiply 3 x 2 and output) emits the byte 6.
func TestScenarioMultiply(t *testing.T) {
	program := build(t, "+++[>++<-]>.")
	var out strings.Builder
	interp := tape.New(program, strings.NewReader(""), &out, &strings.Builder{})
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "\x06" {
		t.Fatalf("expected byte 6, got %v", []byte(out.String()))
	}
}

// S4: `>>>[-]` applied to a fresh tape extends the tape to length >= 4 and
// leaves cell 3 = 0, head at index 3.
func TestScenarioExtendAndClear(t *testing.T) {
	program := build(t, ">>>[-]")
	interp := tape.New(program, strings.NewReader(""), &strings.Builder{}, &strings.Builder{})
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.Len(); got < 4 {
		t.Fatalf("expected tape length >= 4, got %d", got)
	}
	if got := interp.Position(); got != 3 {
		t.Fatalf("expected head at 3, got %d", got)
	}
	if got := interp.View().At(3); got != 0 {
		t.Fatalf("expected cell 3 = 0, got %d", got)
	}
}

// P3: running Inc 256 times leaves cell 0 = 0; a lone Dec on a fresh tape
// leaves cell 0 = 255.
func TestCellWrap(t *testing.T) {
	program := build(t, strings.Repeat("+", 256))
	interp := tape.New(program, strings.NewReader(""), &strings.Builder{}, &strings.Builder{})
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.View().At(0); got != 0 {
		t.Fatalf("expected cell 0 = 0 after 256 increments, got %d", got)
	}

	program = build(t, "-")
	interp = tape.New(program, strings.NewReader(""), &strings.Builder{}, &strings.Builder{})
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := interp.View().At(0); got != 255 {
		t.Fatalf("expected cell 0 = 255 after one decrement, got %d", got)
	}
}

// P1: parse/build round-trips balanced programs, and CleanText recovers
// the original source; unbalanced programs fail to build.
func TestParseRoundTrip(t *testing.T) {
	const src = "+++[>++<-]>."
	program := build(t, src)
	if got := program.CleanText(); got != src {
		t.Fatalf("expected CleanText to recover %q, got %q", src, got)
	}

	actions, err := tape.Parse("[[]")
	if err != nil {
		t.Fatalf("parse unbalanced source: %v", err)
	}
	if _, err := tape.Build(actions); err == nil {
		t.Fatal("expected Build to fail on an unbalanced program")
	}
}

// P2: every Start/End pair in a linked program maps to each other
// symmetrically, and every Start's pair index is strictly greater.
func TestBracketUniqueness(t *testing.T) {
	program := build(t, "+[>+[-]<-]>.")
	for i, a := range program.Actions {
		if a.Kind != tape.ActionInstruction {
			continue
		}
		switch a.Instruction {
		case tape.Start:
			j, ok := program.Pairs[i]
			if !ok {
				t.Fatalf("action %d: Start has no pair", i)
			}
			if j <= i {
				t.Fatalf("action %d: Start's pair %d is not after it", i, j)
			}
			if program.Pairs[j] != i {
				t.Fatalf("action %d: pair is not symmetric (pair[%d]=%d)", i, j, program.Pairs[j])
			}
		case tape.End:
			j, ok := program.Pairs[i]
			if !ok {
				t.Fatalf("action %d: End has no pair", i)
			}
			if j >= i {
				t.Fatalf("action %d: End's pair %d is not before it", i, j)
			}
			if program.Pairs[j] != i {
				t.Fatalf("action %d: pair is not symmetric (pair[%d]=%d)", i, j, program.Pairs[j])
			}
		}
	}
}

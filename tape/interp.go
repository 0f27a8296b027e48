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

package tape

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// RuntimeError is returned by Interpreter.Run and Step for a left-move past
// cell 0. Failures reported by Custom actions (including package ir's
// marker, assertion and overflow checks) are not RuntimeErrors: Run and
// Step return the Custom function's own error unchanged. It carries
// everything a caller needs to print a useful diagnostic without
// re-deriving it from the Interpreter.
type RuntimeError struct {
	// Reason is a short machine-stable label, e.g. "assertion failed",
	// "marker already exists", "tape pointer underflow".
	Reason string
	// Why is the source-comment string supplied at the failing
	// assertion's call site, when there is one.
	Why string
	// Expected and Actual are the positions compared by a failing
	// assertion. Unused (both zero) for marker-existence errors.
	Expected, Actual int
	// MarkerSite is the creation site of a referenced marker, when one is
	// involved.
	MarkerSite string
	// TapeRender is the bracketed tape rendering at the moment of failure.
	TapeRender string
}

func (e *RuntimeError) Error() string {
	msg := e.Reason
	if e.Why != "" {
		msg += ": " + e.Why
	}
	msg += fmt.Sprintf(" (expected %d, actual %d)", e.Expected, e.Actual)
	if e.MarkerSite != "" {
		msg += "\nmarker placed at: " + e.MarkerSite
	}
	msg += "\n" + e.TapeRender
	return msg
}

// ByteSource yields input bytes for the Input instruction. io.Reader
// satisfies it directly; EOF is not an error condition for the
// interpreter, it is mapped to a cell value of 0.
type ByteSource = io.Reader

// ByteSink accepts output bytes for the Output instruction, in order.
type ByteSink = io.Writer

// Interpreter executes a linked Program against a tape. It owns its input
// source and output sink for its lifetime; it is not safe for concurrent
// use. Build many Interpreters, one per goroutine, rather than sharing one.
type Interpreter struct {
	program *Program
	input   *bufio.Reader
	output  ByteSink
	diag    io.Writer

	cells   cells
	pos     int
	ip      int
	markers map[string]Marker

	printLevel    uint8
	printLevelSet bool
}

// New creates an Interpreter bound to the given program, input source and
// output sink. diag receives printed comments; it has no default and a nil
// diag is not supported — pass an explicit io.Writer, typically os.Stderr.
// Assertion failures are returned as errors, not written to diag.
func New(program *Program, input ByteSource, output ByteSink, diag io.Writer) *Interpreter {
	return &Interpreter{
		program: program,
		input:   bufio.NewReader(input),
		output:  output,
		diag:    diag,
		cells:   cells{0},
		markers: make(map[string]Marker),
	}
}

// SetPrintLevel sets the minimum comment importance level that gets
// printed to the diagnostic stream. Comments below this level are
// evaluated but produce no output.
func (in *Interpreter) SetPrintLevel(level uint8) {
	in.printLevel = level
	in.printLevelSet = true
}

// Position returns the tape head's current index.
func (in *Interpreter) Position() int { return in.pos }

// IP returns the interpreter's current instruction pointer, an index into
// the bound Program's Actions — for callers that want to trace execution
// (cmd/tapestat's -debug logging).
func (in *Interpreter) IP() int { return in.ip }

// Len returns the number of cells allocated so far.
func (in *Interpreter) Len() int { return len(in.cells) }

// View returns a read-only view of the tape, for inspection after Run
// returns (or from within a Custom action mid-run).
func (in *Interpreter) View() TapeView { return TapeView{cells: in.cells} }

func (in *Interpreter) fail(reason, why string, expected, actual int, markerSite string) error {
	return &RuntimeError{
		Reason:     reason,
		Why:        why,
		Expected:   expected,
		Actual:     actual,
		MarkerSite: markerSite,
		TapeRender: renderTape(in.cells, in.pos),
	}
}

// Run executes the program to completion, to a fatal RuntimeError, or to
// an I/O error from the input source or output sink. The interpreter's
// loop is a single, synchronous dispatch over in.ip; loop jumps rewrite
// in.ip directly and the usual +1 happens afterwards, same as every other
// action.
func (in *Interpreter) Run() error {
	actions := in.program.Actions
	for in.ip < len(actions) {
		a := actions[in.ip]
		switch a.Kind {
		case ActionInstruction:
			if err := in.step(a.Instruction); err != nil {
				return err
			}
		case ActionComment:
			if in.printLevelSet && a.Level >= in.printLevel {
				io.WriteString(in.diag, "|> "+a.Comment+"\n")
			}
		case ActionIndent:
			// no runtime effect
		case ActionCustom:
			if err := a.Custom(in.View(), in.pos, in.markers); err != nil {
				return err
			}
		}
		in.ip++
	}
	return nil
}

// Step executes exactly one action and advances past it, for callers that
// want to observe the tape between actions (cmd/tapestat's -step debugger).
// done is true once the program has run to completion; Step must not be
// called again after that.
func (in *Interpreter) Step() (done bool, err error) {
	actions := in.program.Actions
	if in.ip >= len(actions) {
		return true, nil
	}
	a := actions[in.ip]
	switch a.Kind {
	case ActionInstruction:
		if err := in.step(a.Instruction); err != nil {
			return false, err
		}
	case ActionComment:
		if in.printLevelSet && a.Level >= in.printLevel {
			io.WriteString(in.diag, "|> "+a.Comment+"\n")
		}
	case ActionIndent:
		// no runtime effect
	case ActionCustom:
		if err := a.Custom(in.View(), in.pos, in.markers); err != nil {
			return false, err
		}
	}
	in.ip++
	return in.ip >= len(actions), nil
}

func (in *Interpreter) step(ins Instruction) error {
	switch ins {
	case Left:
		if in.pos == 0 {
			return in.fail("tape pointer underflow", "", 0, 0, "")
		}
		in.pos--
	case Right:
		in.pos++
		in.cells.growTo(in.pos)
	case Inc:
		in.cells[in.pos]++
	case Dec:
		in.cells[in.pos]--
	case Input:
		b, err := in.input.ReadByte()
		switch {
		case err == nil:
			in.cells[in.pos] = b
		case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
			in.cells[in.pos] = 0
		default:
			return errors.Wrap(err, "input read failed")
		}
	case Output:
		if _, err := in.output.Write(in.cells[in.pos : in.pos+1]); err != nil {
			return errors.Wrap(err, "output write failed")
		}
		if f, ok := in.output.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return errors.Wrap(err, "output flush failed")
			}
		}
	case Start:
		if in.cells[in.pos] == 0 {
			in.ip = in.program.Pairs[in.ip]
		}
	case End:
		if in.cells[in.pos] != 0 {
			in.ip = in.program.Pairs[in.ip]
		}
	}
	return nil
}

// Markers are placed, removed and asserted exclusively through
// ActionCustom closures (see package ir's AddMarker, RemoveMarker,
// AssertPosition and AssertMarkerOffset constructors) rather than through
// dedicated Interpreter methods: the marker table is handed to every
// Custom action directly, so that is the one place this bookkeeping
// happens.

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
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

// ActionKind discriminates the payload carried by an Action.
type ActionKind int

const (
	// ActionInstruction is one of the eight tape-machine primitives.
	ActionInstruction ActionKind = iota
	// ActionComment is a build-time comment, printed when its Level is at
	// or above the Interpreter's print-level threshold.
	ActionComment
	// ActionIndent nudges the pretty-printer's indent level; it has no
	// runtime effect.
	ActionIndent
	// ActionCustom is the opaque escape hatch: markers and assertions are
	// implemented as sugar over it (see ir.AddMarker and friends).
	ActionCustom
)

// CustomFunc observes the tape and the marker table at the point it runs,
// and may halt the program by returning a non-nil error.
type CustomFunc func(view TapeView, position int, markers map[string]Marker) error

// Action is one element of a linked Program: a single tape-machine
// primitive or a build-time annotation. Action is the flat, lowered
// counterpart of ir.Item — there is no nested Sequence, Repeat or Loop
// left once a Program has been built; loop structure is recovered purely
// from the Start/End instructions and the pair map.
type Action struct {
	Kind ActionKind

	// Valid when Kind == ActionInstruction.
	Instruction Instruction

	// Valid when Kind == ActionComment.
	Comment string
	Level   uint8

	// Valid when Kind == ActionIndent. true means +1, false means -1.
	IndentIn bool

	// Valid when Kind == ActionCustom.
	Custom CustomFunc
}

// Marker is a named snapshot of the tape head's position at the point it
// was placed, kept around so later code can assert it is back where it
// started (or some fixed offset from there).
type Marker struct {
	Position int
	Site     string
}

// LinkMismatch describes one unmatched bracket found while linking a
// Program.
type LinkMismatch struct {
	Index int
	Msg   string
}

// LinkError aggregates every unmatched bracket found during Build, in the
// order they were discovered during the scan.
type LinkError []LinkMismatch

func (e LinkError) Error() string {
	parts := make([]string, len(e))
	for i, m := range e {
		parts[i] = errors.Errorf("action %d: %s", m.Index, m.Msg).Error()
	}
	return strings.Join(parts, "\n")
}

// Program is a flat sequence of Actions plus a bracket-pair map: for every
// index i whose Action is a Start, Pairs[i] is the index of its matching
// End, and vice versa.
type Program struct {
	Actions []Action
	Pairs   map[int]int
}

// Build links the brackets in actions, producing a Program. It performs a
// single left-to-right scan with a stack of open indices; an unclosed
// open or an unopened close is a build-time error, and the returned
// Program is never partially valid — on error it is nil.
func Build(actions []Action) (*Program, error) {
	pairs := make(map[int]int)
	var stack []int
	var errs LinkError

	for i, a := range actions {
		if a.Kind != ActionInstruction {
			continue
		}
		switch a.Instruction {
		case Start:
			stack = append(stack, i)
		case End:
			if len(stack) == 0 {
				errs = append(errs, LinkMismatch{Index: i, Msg: "unopened close"})
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pairs[i] = open
			pairs[open] = i
		}
	}
	for _, open := range stack {
		errs = append(errs, LinkMismatch{Index: open, Msg: "unclosed open"})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &Program{Actions: actions, Pairs: pairs}, nil
}

// String pretty-prints the program: direct instructions contribute their
// character, comments render as "// <text>" on their own line, and Indent
// actions adjust a two-space indent and insert a newline. Marker and
// assertion actions (sugar over ActionCustom) contribute nothing.
func (p *Program) String() string {
	var buf bytes.Buffer
	indent := 0
	indentStr := ""

	for _, a := range p.Actions {
		switch a.Kind {
		case ActionInstruction:
			buf.WriteByte(a.Instruction.Char())
		case ActionComment:
			buf.WriteByte('\n')
			buf.WriteString(indentStr)
			buf.WriteString("// ")
			buf.WriteString(a.Comment)
			buf.WriteByte('\n')
			buf.WriteString(indentStr)
		case ActionIndent:
			if a.IndentIn {
				indent++
			} else if indent > 0 {
				indent--
			}
			indentStr = strings.Repeat("  ", indent)
			buf.WriteByte('\n')
			buf.WriteString(indentStr)
		case ActionCustom:
			// contributes nothing
		}
	}
	return buf.String()
}

// CleanText renders the program as its eight-character source, with
// nothing else: exactly what Parse would accept back.
func (p *Program) CleanText() string {
	var buf bytes.Buffer
	for _, a := range p.Actions {
		if a.Kind == ActionInstruction {
			buf.WriteByte(a.Instruction.Char())
		}
	}
	return buf.String()
}

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

import "github.com/pkg/errors"

// Instruction is one of the eight tape-machine primitives.
type Instruction byte

// The eight tape-machine primitives, in their canonical character order.
const (
	Left  Instruction = iota // <
	Right                    // >
	Inc                      // +
	Dec                      // -
	Input                    // ,
	Output                   // .
	Start                    // [
	End                      // ]
)

var instructionChars = [...]byte{
	Left:   '<',
	Right:  '>',
	Inc:    '+',
	Dec:    '-',
	Input:  ',',
	Output: '.',
	Start:  '[',
	End:    ']',
}

// Char returns the canonical single-character rendering of the instruction.
func (ins Instruction) Char() byte {
	return instructionChars[ins]
}

// String implements fmt.Stringer.
func (ins Instruction) String() string {
	return string(ins.Char())
}

// InstructionFromByte maps a source byte back to its Instruction. ok is
// false if b is not one of the eight primitive characters.
func InstructionFromByte(b byte) (ins Instruction, ok bool) {
	switch b {
	case '<':
		return Left, true
	case '>':
		return Right, true
	case '+':
		return Inc, true
	case '-':
		return Dec, true
	case ',':
		return Input, true
	case '.':
		return Output, true
	case '[':
		return Start, true
	case ']':
		return End, true
	default:
		return 0, false
	}
}

// ParseError is returned by Parse when the source text contains a byte
// outside the primitive alphabet `<>+-,.[]`.
type ParseError struct {
	Offset int
	Byte   byte
}

func (e *ParseError) Error() string {
	return errors.Errorf("unknown byte 0x%02X at offset %d", e.Byte, e.Offset).Error()
}

// Parse reads a flat sequence of primitive characters and returns the
// corresponding, unlinked Actions. Any byte outside the alphabet is a
// parse error; unlike many toy interpreters, unknown bytes are never
// silently skipped.
func Parse(src string) ([]Action, error) {
	actions := make([]Action, 0, len(src))
	for i := 0; i < len(src); i++ {
		ins, ok := InstructionFromByte(src[i])
		if !ok {
			return nil, &ParseError{Offset: i, Byte: src[i]}
		}
		actions = append(actions, Action{Kind: ActionInstruction, Instruction: ins})
	}
	return actions, nil
}

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

import "tapestat/internal/tapefmt"

func renderTape(cells []byte, pos int) string {
	return tapefmt.RenderTape(cells, pos)
}

// cells is the tape's backing storage. It grows to the right on demand and
// never shrinks; cell values wrap modulo 256 using plain byte arithmetic.
type cells []byte

func (c *cells) growTo(pos int) {
	for len(*c) <= pos {
		*c = append(*c, 0)
	}
}

// TapeView is a read-only view of the tape, handed to Custom actions so
// they can inspect state without being able to mutate it directly.
type TapeView struct {
	cells []byte
}

// Len returns the number of cells allocated so far.
func (v TapeView) Len() int { return len(v.cells) }

// At returns the value of cell i. It panics if i is out of range, exactly
// like a plain slice index would.
func (v TapeView) At(i int) byte { return v.cells[i] }

// Render produces the bracketed diagnostic rendering of the tape with the
// cell at pos highlighted, e.g. "[ 0 5 [ 42] 7 0 ]".
func (v TapeView) Render(pos int) string {
	return renderTape(v.cells, pos)
}

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

// Package tapefmt holds small formatting helpers for the tape package's
// diagnostics. Package ir does not import it; ir's assertion messages reach
// it through tape.TapeView.Render.
package tapefmt

import (
	"bytes"
	"fmt"
)

// RenderTape renders cells with the cell at pos bracketed, e.g.
// "[ 0 5 [ 42] 7 0 ]". pos may be equal to len(cells) (one past the end);
// in that case no cell is bracketed.
func RenderTape(cells []byte, pos int) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, c := range cells {
		if i == pos {
			fmt.Fprintf(&buf, " [ %d]", c)
		} else {
			fmt.Fprintf(&buf, " %d", c)
		}
	}
	buf.WriteString(" ]")
	return buf.String()
}

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

// Package ir provides the high-level program builder: a composable tree of
// Items — direct instructions, sequences, loops, bounded repetition,
// comments, markers, assertions, and an opaque Custom escape hatch — that
// Lower flattens into a tape.Program-ready Action list.
//
// Lowering is total and deterministic (see Lower), so an Item tree can be
// built once and lowered (or pretty-printed) many times; building never
// mutates the tree it is handed.
package ir

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"tapestat/tape"
)

// Kind discriminates the payload carried by an Item.
type Kind int

const (
	// KindDirect wraps a single primitive instruction.
	KindDirect Kind = iota
	// KindSequence holds an ordered list of Items, emitted in order.
	KindSequence
	// KindLoop holds a loop body plus an indent-hint flag.
	KindLoop
	// KindRepeat holds one Item and a repetition count.
	KindRepeat
	// KindComment holds a comment payload and an importance level.
	KindComment
	// KindCustom wraps an opaque, cloneable callable. Markers and
	// assertions are implemented as sugar over this.
	KindCustom
)

// Item is one node of the program builder's tree. See the package doc and
// the Kind constants for the shape of each variant.
type Item struct {
	Kind Kind

	// KindDirect
	Instruction tape.Instruction

	// KindSequence, KindLoop (loop body)
	Items []Item

	// KindLoop
	LoopIndent bool

	// KindRepeat
	Repeated *Item
	Count    int

	// KindComment
	CommentText string
	Level       uint8

	// KindCustom
	Custom tape.CustomFunc
}

// Direct wraps a single primitive instruction.
func Direct(ins tape.Instruction) Item {
	return Item{Kind: KindDirect, Instruction: ins}
}

// Sequence emits every item in order.
func Sequence(items ...Item) Item {
	return Item{Kind: KindSequence, Items: items}
}

// Loop wraps body in a `[ ... ]` loop. indent, when true, makes Lower emit
// bracketing indent hints for the pretty-printer around the loop body.
func Loop(indent bool, body ...Item) Item {
	return Item{Kind: KindLoop, Items: body, LoopIndent: indent}
}

// Repeat lowers to item's lowered form concatenated n times. For n == 0
// the lowered output is empty.
func Repeat(item Item, n int) Item {
	return Item{Kind: KindRepeat, Repeated: &item, Count: n}
}

// Comment wraps item, prepending a comment action of the given importance
// level ahead of it.
func Comment(text string, level uint8, item Item) Item {
	return Sequence(Item{Kind: KindComment, CommentText: text, Level: level}, item)
}

// CommentOnly is a bare comment with no wrapped item.
func CommentOnly(text string, level uint8) Item {
	return Item{Kind: KindComment, CommentText: text, Level: level}
}

// Custom wraps an opaque callable observing (tape view, position, marker
// table) at the point it runs. It may halt the program by returning an
// error.
func Custom(f tape.CustomFunc) Item {
	return Item{Kind: KindCustom, Custom: f}
}

// callSite captures the file:line of the caller `skip` frames up — the Go
// analogue of Rust's #[track_caller] + Location::caller(), used so marker
// and assertion diagnostics can name where they were written in source,
// not where the shared closure happens to run.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	return fmt.Sprintf("%s:%s", file, strconv.Itoa(line))
}

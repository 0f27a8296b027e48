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

// Lower flattens an Item tree into a flat slice of tape.Actions. It is
// total and deterministic:
//
//	Lower(Sequence(a, b))    == append(Lower(a), Lower(b)...)
//	Lower(Repeat(x, n))      == concat of n copies of Lower(x)
//	Lower(Loop(body, false)) == [Start] ++ Lower(body) ++ [End]
func Lower(item Item) []tape.Action {
	switch item.Kind {
	case KindDirect:
		return []tape.Action{{Kind: tape.ActionInstruction, Instruction: item.Instruction}}

	case KindSequence:
		out := make([]tape.Action, 0, len(item.Items))
		for _, it := range item.Items {
			out = append(out, Lower(it)...)
		}
		return out

	case KindLoop:
		var out []tape.Action
		if item.LoopIndent {
			out = append(out, tape.Action{Kind: tape.ActionIndent, IndentIn: true})
		}
		out = append(out, tape.Action{Kind: tape.ActionInstruction, Instruction: tape.Start})
		for _, it := range item.Items {
			out = append(out, Lower(it)...)
		}
		out = append(out, tape.Action{Kind: tape.ActionInstruction, Instruction: tape.End})
		if item.LoopIndent {
			out = append(out, tape.Action{Kind: tape.ActionIndent, IndentIn: false})
		}
		return out

	case KindRepeat:
		if item.Count == 0 {
			return nil
		}
		one := Lower(*item.Repeated)
		out := make([]tape.Action, 0, len(one)*item.Count)
		for n := 0; n < item.Count; n++ {
			out = append(out, one...)
		}
		return out

	case KindComment:
		return []tape.Action{{Kind: tape.ActionComment, Comment: item.CommentText, Level: item.Level}}

	case KindCustom:
		return []tape.Action{{Kind: tape.ActionCustom, Custom: item.Custom}}

	default:
		panic("ir: unknown item kind")
	}
}

// Build lowers item and links the result into a runnable tape.Program.
func Build(item Item) (*tape.Program, error) {
	return tape.Build(Lower(item))
}

// Parse reads a flat sequence of primitive characters into a Sequence of
// Direct items. Any byte outside the alphabet `<>+-,.[]` is a parse error.
func Parse(src string) (Item, error) {
	actions, err := tape.Parse(src)
	if err != nil {
		return Item{}, err
	}
	items := make([]Item, len(actions))
	for i, a := range actions {
		items[i] = Direct(a.Instruction)
	}
	return Sequence(items...), nil
}

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

// Package tape implements the tape-machine: an 8-bit, infinite-right tape
// with wrap-around arithmetic, and an interpreter that executes a linked
// Program of Actions against it.
//
// The instruction set is the classic eight-primitive family (move left,
// move right, increment, decrement, read byte, write byte, loop-begin,
// loop-end), rendered with the canonical single-character alphabet
// `< > + - , . [ ]`. A Program additionally carries build-time annotations
// (comments, indent hints, position markers, position assertions, and an
// opaque Custom escape hatch) that the Interpreter evaluates as debugging
// aids; none of them affect the tape itself.
//
// This package has no opinion on how a Program is constructed: it can be
// parsed directly from source text with Parse, or built up from a richer
// intermediate representation by package ir and then linked with Build.
package tape

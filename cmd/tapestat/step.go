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

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"tapestat/tape"
)

func newByteReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// runStepped drives interp one action at a time, printing the tape
// rendering after each step. Space advances, q quits early. When the
// controlling terminal can't be switched to raw mode (termEnableRaw
// failed, e.g. on Windows or a non-tty stdin), it falls back to a
// line-buffered stepper where Enter advances.
func runStepped(interp *tape.Interpreter) error {
	restore, err := termEnableRaw()
	if err != nil {
		return runSteppedLineBuffered(interp)
	}
	defer restore()

	in := bufio.NewReader(os.Stdin)
	buf := make([]byte, 1)
	for {
		fmt.Fprintln(os.Stderr, interp.View().Render(interp.Position()))
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			return nil
		}
		if buf[0] == 'q' {
			return nil
		}
		done, err := interp.Step()
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintln(os.Stderr, interp.View().Render(interp.Position()))
			return nil
		}
	}
}

func runSteppedLineBuffered(interp *tape.Interpreter) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintln(os.Stderr, interp.View().Render(interp.Position()))
		fmt.Fprint(os.Stderr, "(Enter to step, q to quit) ")
		if !scanner.Scan() {
			return nil
		}
		if scanner.Text() == "q" {
			return nil
		}
		done, err := interp.Step()
		if err != nil {
			return err
		}
		if done {
			fmt.Fprintln(os.Stderr, interp.View().Render(interp.Position()))
			return nil
		}
	}
}

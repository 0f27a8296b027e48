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
	"github.com/golang/glog"

	"tapestat/tape"
)

// runTraced drives interp to completion one action at a time, logging the
// instruction pointer and a tape snapshot at glog.V(2) after every step —
// the -debug tracing spec.md/§4.3 promises, mirroring cmd/retro's -debug.
// tape.Interpreter.Run itself never imports glog; this loop is the only
// place that pairs Step with logging, keeping the interpreter a pure
// library.
func runTraced(interp *tape.Interpreter) error {
	for {
		done, err := interp.Step()
		if err != nil {
			return err
		}
		if glog.V(2) {
			glog.Infof("ip=%d %s", interp.IP(), interp.View().Render(interp.Position()))
		}
		if done {
			return nil
		}
	}
}

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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"tapestat/internal/streamio"
	"tapestat/ir"
	"tapestat/pcapstats"
	"tapestat/tape"
)

// exitIOError and exitRuntimeError distinguish the two fatal classes named
// in spec.md §7: a malformed/unreadable capture is an I/O problem, a
// RuntimeError from the tape interpreter is a program invariant failure.
const (
	exitOK = iota
	exitRuntimeError
	exitIOError
)

var (
	pcapPath    = flag.String("pcap", "", "pcap capture file to summarize (required)")
	packetWidth = flag.Int("packet-width", 4, "decimal digits in the packet/UDP counters")
	byteWidth   = flag.Int("byte-width", 6, "decimal digits in the byte-total counter")
	destWidth   = flag.Int("dest-width", 2, "decimal digits in each destination's occurrence counter")
	step        = flag.Bool("step", false, "single-step the tape program interactively")
	debug       = flag.Bool("debug", false, "log instruction-pointer/tape snapshots at glog -v=2")
)

func atExit(code int, err error) {
	if err == nil {
		return
	}
	glog.Errorf("%+v", err)
	fmt.Fprintf(os.Stderr, "\n%v\n", err)
	os.Exit(code)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *pcapPath == "" {
		atExit(exitIOError, errors.New("-pcap is required"))
	}

	data, err := os.ReadFile(*pcapPath)
	if err != nil {
		atExit(exitIOError, errors.Wrapf(err, "reading %s", *pcapPath))
	}

	capture, err := pcapstats.NewCapture(data)
	if err != nil {
		atExit(exitIOError, errors.Wrap(err, "parsing pcap capture"))
	}
	records, err := pcapstats.EncodeRecords(capture)
	if err != nil {
		atExit(exitIOError, errors.Wrap(err, "encoding capture records"))
	}

	program, err := ir.Build(pcapstats.BuildStatsProgram(*packetWidth, *byteWidth, *destWidth))
	if err != nil {
		atExit(exitRuntimeError, errors.Wrap(err, "building stats program"))
	}

	stdout := bufio.NewWriter(os.Stdout)
	// In -step mode the interpreter's Output action auto-flushes stdout
	// after every written byte (tape.Interpreter.step checks for a Flush
	// method), matching a single-step debugger's need to see output
	// immediately. Otherwise an ErrWriter hides that Flush method so the
	// interpreter batches into the bufio.Writer and a sticky write error
	// doesn't get reported once per byte on a broken pipe.
	var output io.Writer = stdout
	var errWriter *streamio.ErrWriter
	if !*step {
		errWriter = streamio.NewErrWriter(stdout)
		output = errWriter
	}
	interp := tape.New(program, newByteReader(records), output, os.Stderr)
	interp.SetPrintLevel(0)
	glog.V(2).Infof("program built, %d cells of input", len(records))

	switch {
	case *step:
		err = runStepped(interp)
	case *debug:
		err = runTraced(interp)
		if err == nil && errWriter != nil {
			err = errWriter.Err
		}
	default:
		err = interp.Run()
		if err == nil && errWriter != nil {
			err = errWriter.Err
		}
	}
	stdout.Flush()
	if err != nil {
		if _, ok := errors.Cause(err).(*tape.RuntimeError); ok {
			atExit(exitRuntimeError, err)
		}
		atExit(exitRuntimeError, errors.Wrap(err, "running stats program"))
	}
}

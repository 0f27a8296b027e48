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

// The tapestat command reads a pcap capture file, builds the tape-machine
// program from package pcapstats, runs it, and prints the capture summary
// (packet count, UDP/TCP split, total payload bytes, destination-address
// occurrence list) that the tape program writes to stdout.
//
// Usage:
//
//	-pcap filename
//		  pcap capture file to summarize (required)
//	-packet-width int
//		  decimal digits in the packet/UDP counters (default 4)
//	-byte-width int
//		  decimal digits in the byte-total counter (default 6)
//	-dest-width int
//		  decimal digits in each destination's occurrence counter (default 2)
//	-step
//		  single-step the tape program interactively: space advances one
//		  action, q quits. Falls back to a line-buffered stepper (press
//		  Enter) when the controlling terminal can't be set to raw mode.
//	-debug
//		  run without interaction, logging an instruction-pointer/tape
//		  snapshot after every action (requires -v=2 to actually print;
//		  see glog's -v flag). Ignored when -step is also given.
//	-v value
//		  glog verbosity level; -v=2 makes -debug trace every tape action
//
// Exit codes: 0 on success; 1 if the tape program hits a runtime invariant
// failure (arithmetic overflow, tape pointer underflow, a build-time
// assertion mismatch); 2 if the capture file can't be read or parsed.
package main

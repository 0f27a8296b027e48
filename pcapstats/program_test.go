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

package pcapstats_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"tapestat/ir"
	"tapestat/pcapstats"
	"tapestat/tape"
)

// buildPcap assembles a minimal pcap byte stream (global header plus the
// given Ethernet frames) the way a real capture tool would write one.
func buildPcap(t *testing.T, frames ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer

	header := make([]byte, 24)
	binary.LittleEndian.PutUint32(header[0:4], 0xA1B2C3D4)
	binary.LittleEndian.PutUint16(header[4:6], 2)
	binary.LittleEndian.PutUint16(header[6:8], 4)
	binary.LittleEndian.PutUint32(header[16:20], 0xFFFF)
	binary.LittleEndian.PutUint32(header[20:24], 1)
	buf.Write(header)

	for _, frame := range frames {
		rec := make([]byte, 16)
		binary.LittleEndian.PutUint32(rec[8:12], uint32(len(frame)))
		binary.LittleEndian.PutUint32(rec[12:16], uint32(len(frame)))
		buf.Write(rec)
		buf.Write(frame)
	}
	return buf.Bytes()
}

// ethernetIPv4Frame builds a minimal Ethernet(II) + IPv4 frame with no IP
// options, carrying payload as its transport data.
func ethernetIPv4Frame(protocol byte, dest [4]byte, payload []byte) []byte {
	frame := make([]byte, 14+20+len(payload))
	binary.BigEndian.PutUint16(frame[12:14], 0x0800) // ethertype IPv4

	ip := frame[14:]
	ip[0] = 0x45 // version 4, IHL 5
	binary.BigEndian.PutUint16(ip[2:4], uint16(20+len(payload)))
	ip[9] = protocol
	copy(ip[12:16], []byte{10, 0, 0, 1})
	copy(ip[16:20], dest[:])
	copy(ip[20:], payload)
	return frame
}

// runProgram builds item and runs it against input, returning its output.
func runProgram(t *testing.T, item ir.Item, input []byte) string {
	t.Helper()
	program, err := ir.Build(item)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var out strings.Builder
	var diag strings.Builder
	interp := tape.New(program, bytes.NewReader(input), &out, &diag)
	if err := interp.Run(); err != nil {
		t.Fatalf("run: %v\n%s", err, diag.String())
	}
	return out.String()
}

// A single UDP packet should be tallied as one packet, one UDP packet,
// its payload length in bytes, and one destination-key list entry with
// count 1.
func TestStatsProgramSingleUDPPacket(t *testing.T) {
	frame := ethernetIPv4Frame(0x11, [4]byte{192, 168, 0, 1}, []byte("0123456789"))
	pcapBytes := buildPcap(t, frame)

	capture, err := pcapstats.NewCapture(pcapBytes)
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	records, err := pcapstats.EncodeRecords(capture)
	if err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}

	out := runProgram(t, pcapstats.BuildStatsProgram(4, 6, 2), records)

	for _, want := range []string{"PACKETS 0001", "UDP 0001", "BYTES 000010", "DST "} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

// Two packets to distinct destinations, one TCP and one UDP, should be
// tallied as two packets, one UDP, and two distinct list entries.
func TestStatsProgramTwoPacketsDistinctDestinations(t *testing.T) {
	frameA := ethernetIPv4Frame(0x06, [4]byte{192, 168, 0, 1}, []byte("abc"))
	frameB := ethernetIPv4Frame(0x11, [4]byte{192, 168, 0, 2}, []byte("de"))
	pcapBytes := buildPcap(t, frameA, frameB)

	capture, err := pcapstats.NewCapture(pcapBytes)
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	records, err := pcapstats.EncodeRecords(capture)
	if err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}

	out := runProgram(t, pcapstats.BuildStatsProgram(4, 6, 2), records)

	for _, want := range []string{"PACKETS 0002", "UDP 0001", "BYTES 000005"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Count(out, "DST ") != 2 {
		t.Fatalf("expected two distinct destination entries, got:\n%s", out)
	}
}

// A non-TCP/UDP packet (ICMP, protocol 0x01) is a well-formed capture, not
// an error: it falls into the "else" (TCP) bucket the same way the original
// implementation's handle_protocol does, so it is still tallied as a packet
// without bumping the UDP counter.
func TestStatsProgramICMPPacketDoesNotError(t *testing.T) {
	frame := ethernetIPv4Frame(0x01, [4]byte{192, 168, 0, 9}, []byte("ping"))
	pcapBytes := buildPcap(t, frame)

	capture, err := pcapstats.NewCapture(pcapBytes)
	if err != nil {
		t.Fatalf("NewCapture: %v", err)
	}
	records, err := pcapstats.EncodeRecords(capture)
	if err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}

	out := runProgram(t, pcapstats.BuildStatsProgram(4, 6, 2), records)

	for _, want := range []string{"PACKETS 0001", "UDP 0000", "BYTES 000004"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

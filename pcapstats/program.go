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

package pcapstats

import (
	"tapestat/ir"
	"tapestat/tape"
)

// BuildStatsProgram builds the tape program that computes the capture
// summary: total packet count, UDP/TCP split, total transport-level
// payload bytes, and a destination-IP occurrence list. It reads one
// fixed-width record per packet from the tape machine's input stream (see
// EncodeRecords) and halts cleanly on the terminator record.
//
// The accumulators are the numeric macro family from ir: plain
// increment-by-one counters driven once per packet (or, for the byte
// total, once per payload octet — the tape machine has no multiply
// instruction, so adding N is N additions, the same way the reference bf
// program this was grounded on tallies anything).
func BuildStatsProgram(packetCountWidth, byteTotalWidth, destCountWidth int) ir.Item {
	layout := newLayout(packetCountWidth, byteTotalWidth, destCountWidth)

	return ir.Comment("pcapstats", 1, ir.Sequence(
		at(0, layout.tag, ir.Direct(tape.Input)),
		at(0, layout.tag, ir.Loop(false,
			layout.processRecord(),
			at(0, layout.tag, ir.Direct(tape.Input)),
		)),
		at(0, layout.packetCountBase, printLabeledCounter("PACKETS ", packetCountWidth)),
		at(0, layout.udpCountBase, printLabeledCounter("UDP ", packetCountWidth)),
		at(0, layout.byteTotalBase, printLabeledCounter("BYTES ", byteTotalWidth)),
		moveTo(layout.listBase),
		ir.ScanList(layout.list.Width, layout.printDestRecord()),
	))
}

// layout assigns every cell BuildStatsProgram uses a fixed offset from the
// packet frame's base (the "tag" field, offset 0) — the single reference
// point every OffsetMoves call in this file is expressed relative to, via
// at.
type layout struct {
	packetCountWidth int
	byteTotalWidth   int
	destCountWidth   int

	tag             int // 1 = record follows, 0 = end of capture
	isUDP           int // 0 = TCP, 1 = UDP
	lenHi           int // payload length, big-endian high byte
	lenLo           int // payload length, low byte
	key             int // destination IP checksum key for this packet
	packetCountBase int
	udpCountBase    int
	byteTotalBase   int
	listCarryBase   int // 3 cells: steps, searching, keyCarry (see ir.ListLookupOrInsert)
	listBase        int // first list record's presence field
	list            ir.ListRecordLayout
}

func newLayout(packetCountWidth, byteTotalWidth, destCountWidth int) layout {
	l := layout{
		packetCountWidth: packetCountWidth,
		byteTotalWidth:   byteTotalWidth,
		destCountWidth:   destCountWidth,
	}
	l.tag = 0
	l.isUDP = 1
	l.lenHi = 2
	l.lenLo = 3
	l.key = 4
	l.packetCountBase = 5
	l.udpCountBase = l.packetCountBase + packetCountWidth*4
	l.byteTotalBase = l.udpCountBase + packetCountWidth*4
	l.listCarryBase = l.byteTotalBase + byteTotalWidth*4
	l.listBase = l.listCarryBase + 3
	l.list = ir.NewListRecordLayout(destCountWidth)
	return l
}

// at moves from the ambient position `from` to `to` (both expressed as
// offsets from the same reference point), runs item there, and restores
// to `from` — letting every call site compute the move as a plain Go
// subtraction instead of hand-tracked relative arithmetic.
func at(from, to int, item ir.Item) ir.Item {
	return ir.OffsetMoves(to-from, item)
}

// moveTo moves the head by n cells (right for positive, left for
// negative) without restoring it afterward — used once, to step onto the
// destination list's first record for the final printing pass, after
// which the program ends without coming back.
func moveTo(n int) ir.Item {
	if n >= 0 {
		return ir.Repeat(ir.Direct(tape.Right), n)
	}
	return ir.Repeat(ir.Direct(tape.Left), -n)
}

func (l layout) processRecord() ir.Item {
	return ir.Sequence(
		at(0, l.isUDP, ir.Direct(tape.Input)),
		at(0, l.lenHi, ir.Direct(tape.Input)),
		at(0, l.lenLo, ir.Direct(tape.Input)),
		at(0, l.key, ir.Direct(tape.Input)),
		at(0, l.packetCountBase, ir.Operate(ir.DecimalAdd(l.packetCountWidth))),
		at(0, l.isUDP, ir.ZeroCheck(at(l.isUDP, l.udpCountBase, ir.Operate(ir.DecimalAdd(l.packetCountWidth))))),
		l.addByteLength(),
		l.destList(),
	)
}

// addByteLength adds the record's 2-byte payload length to the byte-total
// counter one unit at a time, consuming lenLo and lenHi in the process:
// lenLo contributes one unit per count, lenHi contributes 256 per count,
// matching the big-endian encoding EncodeRecords writes.
func (l layout) addByteLength() ir.Item {
	return ir.Sequence(
		at(0, l.lenLo, ir.Loop(false,
			ir.Direct(tape.Dec),
			at(l.lenLo, l.byteTotalBase, ir.Operate(ir.DecimalAdd(l.byteTotalWidth))),
		)),
		at(0, l.lenHi, ir.Loop(false,
			ir.Direct(tape.Dec),
			ir.Repeat(at(l.lenHi, l.byteTotalBase, ir.Operate(ir.DecimalAdd(l.byteTotalWidth))), 256),
		)),
	)
}

// destList finds or creates this packet's destination-IP list record and
// increments its occurrence count, via ir.ListLookupOrInsert.
func (l layout) destList() ir.Item {
	return ir.ListLookupOrInsert(l.key, l.listCarryBase, l.destCountWidth)
}

// printDestRecord prints one destination-key list record as a decimal
// checksum key plus its occurrence count. The checksum key is a summary
// of the four destination octets (see EncodeRecords), not the address
// itself, so it is shown as a number rather than dotted-quad notation.
// The labels are written on the count's level-0 carry cell, which is zero
// between operations, not on the presence field (which holds 1).
func (l layout) printDestRecord() ir.Item {
	return ir.Sequence(
		at(0, l.list.CountOffset, writeString("DST ")),
		at(0, l.list.KeyOffset, ir.Sequence(ir.DecimalFromByte(), ir.DisplayDecimal(3))),
		at(0, l.list.CountOffset, ir.Sequence(
			writeString(" COUNT "),
			ir.DisplayCounterDigits(l.destCountWidth),
			writeString("\n"),
		)),
	)
}

func printLabeledCounter(label string, width int) ir.Item {
	return ir.Sequence(writeString(label), ir.DisplayCounterDigits(width), writeString("\n"))
}

func writeString(s string) ir.Item {
	items := make([]ir.Item, 0, len(s))
	for _, b := range []byte(s) {
		items = append(items, writeByte(b))
	}
	return ir.Sequence(items...)
}

func writeByte(b byte) ir.Item {
	return ir.Sequence(
		ir.Repeat(ir.Direct(tape.Inc), int(b)),
		ir.Direct(tape.Output),
		ir.Repeat(ir.Direct(tape.Dec), int(b)),
	)
}

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
	"bytes"
	"encoding/binary"
	"net"

	"github.com/pkg/errors"
)

// EncodeRecords reads every record from capture and encodes it into the
// fixed-width wire format BuildStatsProgram's tape program consumes: one
// 5-byte record per packet (presence=1, isUDP flag, payload length
// hi/lo, destination checksum key), terminated by a single zero byte —
// the tape program's read loop stops the moment it reads a zero presence
// field, the same `,[...,]` idiom tape/interp_test.go exercises directly.
func EncodeRecords(capture *Capture) ([]byte, error) {
	var buf bytes.Buffer
	records := capture.Records()
	for {
		frame, ok, err := records.Next()
		if err != nil {
			return nil, errors.Wrap(err, "reading pcap record")
		}
		if !ok {
			break
		}
		packet, err := frame.IP()
		if err != nil {
			return nil, errors.Wrap(err, "parsing IP packet")
		}

		isUDP := byte(0)
		if packet.Protocol == UDP {
			isUDP = 1
		}

		length := len(packet.Data)
		if length > 0xFFFF {
			return nil, errors.Errorf("payload length %d exceeds the wire format's 16-bit field", length)
		}
		var lenBytes [2]byte
		binary.BigEndian.PutUint16(lenBytes[:], uint16(length))

		buf.WriteByte(1)
		buf.WriteByte(isUDP)
		buf.Write(lenBytes[:])
		buf.WriteByte(destKey(packet.Dest))
	}
	buf.WriteByte(0)
	return buf.Bytes(), nil
}

// destKey summarizes a destination IPv4 address as a single byte: the sum
// of its four octets modulo 256 (addition wraps, so the modulo is just
// Go's native byte arithmetic). BuildStatsProgram's destination list uses
// this as its match key instead of the full 4-octet address — collisions
// are possible but rare for a frequency summary, and a deliberately
// lighter stand-in for the original implementation's exact comparison,
// which tracked a feature that implementation disabled by default.
func destKey(ip net.IP) byte {
	v4 := ip.To4()
	var sum byte
	for _, b := range v4 {
		sum += b
	}
	return sum
}

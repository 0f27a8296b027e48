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

// Package pcapstats reads pcap capture files and drives the tapestat tape
// program over them: it decodes each record's transport-relevant fields in
// plain Go (there is no reason to make the tape machine parse Ethernet and
// IPv4 headers byte-by-byte), then feeds a compact, fixed-format byte
// stream of those fields to an ir-built stats program, which is the part
// that actually computes the summary using only tape-machine primitives.
package pcapstats

import (
	"encoding/binary"
	"net"

	"github.com/pkg/errors"
)

// headerLength is the size of a pcap global header this package accepts:
// magic, version, two reserved words, snapshot length and link type.
const headerLength = 24

const (
	magicLittleEndian = 0xA1B2C3D4
	linkTypeEthernet  = 1
)

// Capture is a parsed pcap file, grounded on the original Capture type:
// it validates the global header up front and hands out an iterator over
// the records that follow.
type Capture struct {
	data []byte
}

// NewCapture validates data's pcap global header and returns a Capture
// over the record data that follows it.
func NewCapture(data []byte) (*Capture, error) {
	if len(data) < headerLength {
		return nil, errors.Errorf("pcap header truncated: need %d bytes, got %d", headerLength, len(data))
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != magicLittleEndian {
		return nil, errors.Errorf("unrecognized pcap magic 0x%08X", magic)
	}
	major := binary.LittleEndian.Uint16(data[4:6])
	minor := binary.LittleEndian.Uint16(data[6:8])
	if major != 2 || minor != 4 {
		return nil, errors.Errorf("unsupported pcap version %d.%d", major, minor)
	}
	snapLen := binary.LittleEndian.Uint32(data[16:20])
	if snapLen != 0xFFFF {
		return nil, errors.Errorf("unsupported snapshot length %d", snapLen)
	}
	linkType := binary.LittleEndian.Uint32(data[20:24])
	if linkType != linkTypeEthernet {
		return nil, errors.Errorf("unsupported link type %d, only Ethernet is understood", linkType)
	}
	return &Capture{data: data}, nil
}

// Records returns an iterator over the capture's physical frames, in file
// order.
func (c *Capture) Records() *Records {
	return &Records{data: c.data, position: headerLength}
}

// Records iterates the physical frames of a Capture.
type Records struct {
	data     []byte
	position int
}

// Next returns the next physical frame, or ok == false once the capture is
// exhausted.
func (r *Records) Next() (frame PhysicalFrame, ok bool, err error) {
	if r.position >= len(r.data) {
		return PhysicalFrame{}, false, nil
	}
	frame, err = readPhysicalFrame(r.data, &r.position)
	if err != nil {
		return PhysicalFrame{}, false, err
	}
	return frame, true, nil
}

// PhysicalFrame is one captured Ethernet frame's payload.
type PhysicalFrame struct {
	data []byte
}

// recordHeaderLength is a per-record pcap header: two timestamp words plus
// captured/original length words.
const recordHeaderLength = 16

func readPhysicalFrame(data []byte, position *int) (PhysicalFrame, error) {
	p := *position
	if p+recordHeaderLength > len(data) {
		return PhysicalFrame{}, errors.New("pcap record header truncated")
	}
	captured := binary.LittleEndian.Uint32(data[p+8 : p+12])
	original := binary.LittleEndian.Uint32(data[p+12 : p+16])
	if captured != original {
		return PhysicalFrame{}, errors.New("packet was truncated in capture")
	}
	start := p + recordHeaderLength
	end := start + int(captured)
	if end > len(data) {
		return PhysicalFrame{}, errors.New("pcap record body truncated")
	}
	*position = end
	return PhysicalFrame{data: data[start:end]}, nil
}

// IP parses frame as an Ethernet(II)-encapsulated IPv4 packet with no IP
// options, returning the packet it describes.
func (frame PhysicalFrame) IP() (IPPacket, error) {
	return newIPPacket(frame.data)
}

const (
	ethernetHeaderLength = 14
	ethertypeIPv4        = 0x0800
)

// IPPacket is a parsed IPv4 packet's transport-relevant header fields plus
// its payload.
type IPPacket struct {
	Data     []byte
	Protocol Protocol
	Source   net.IP
	Dest     net.IP
}

func newIPPacket(data []byte) (IPPacket, error) {
	if len(data) < ethernetHeaderLength+20 {
		return IPPacket{}, errors.New("frame too short for an Ethernet+IPv4 header")
	}
	ethertype := binary.BigEndian.Uint16(data[12:14])
	if ethertype != ethertypeIPv4 {
		return IPPacket{}, errors.Errorf("expected an IPv4 frame, found ethertype 0x%04X", ethertype)
	}

	ip := data[ethernetHeaderLength:]
	versionIHL := ip[0]
	version := versionIHL >> 4
	ihl := versionIHL & 0x0F
	if version != 4 {
		return IPPacket{}, errors.Errorf("expected an IPv4 record, found version %d", version)
	}
	if ihl != 5 {
		return IPPacket{}, errors.New("IPv4 header had options specified, not supported")
	}

	totalLength := binary.BigEndian.Uint16(ip[2:4])
	protocolByte := ip[9]
	source := net.IP(append([]byte(nil), ip[12:16]...))
	dest := net.IP(append([]byte(nil), ip[16:20]...))

	protocol := protocolFromByte(protocolByte)

	dataLength := int(totalLength) - 20
	if dataLength < 0 || 20+dataLength > len(ip) {
		return IPPacket{}, errors.New("IPv4 total length inconsistent with captured data")
	}

	return IPPacket{
		Data:     ip[20 : 20+dataLength],
		Protocol: protocol,
		Source:   source,
		Dest:     dest,
	}, nil
}

// Protocol is an IPv4 transport protocol this package's stats distinguish.
type Protocol byte

const (
	TCP Protocol = 0x06
	UDP Protocol = 0x11
)

// protocolFromByte buckets a raw IPv4 protocol byte into TCP or UDP,
// grounded on the original implementation's handle_protocol (main.rs):
// it tests only for UDP (0x11) and treats everything else — TCP, ICMP,
// or anything else a capture might carry — as the "else" (TCP) bucket
// unconditionally. A capture with non-TCP/UDP traffic is still a
// perfectly well-formed capture, so this never rejects it.
func protocolFromByte(b byte) Protocol {
	if b == byte(UDP) {
		return UDP
	}
	return TCP
}

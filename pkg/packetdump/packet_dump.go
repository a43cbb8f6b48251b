// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package packetdump implements an element dumping the TCP segments that
// pass through a pipeline.
package packetdump

import (
	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
)

// Direction tells which port a dumped packet was seen on.
type Direction int

const (
	// Inbound packets were received from the peer.
	Inbound Direction = iota
	// Outbound packets are on their way to the peer.
	Outbound
	// Ack packets were synthesized by an element of the pipeline.
	Ack
)

func (d Direction) String() string {
	switch d {
	case Inbound:
		return "in"
	case Outbound:
		return "out"
	case Ack:
		return "ack"
	default:
		return "unknown"
	}
}

// Dump is one packet as handed to filters and formatters. Data is a private
// copy of the packet bytes.
type Dump struct {
	Direction  Direction
	Data       []byte
	Attributes dataplane.Attributes

	// Segment is only meaningful when Valid is set.
	Segment packet.Segment
	Valid   bool
}

func newDump(dir Direction, data []byte, attributes dataplane.Attributes) *Dump {
	dump := &Dump{
		Direction:  dir,
		Data:       data,
		Attributes: attributes,
	}
	if seg, err := packet.ParseSegment(data); err == nil {
		dump.Segment = seg
		dump.Valid = true
	}

	return dump
}

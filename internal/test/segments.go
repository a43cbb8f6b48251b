// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package test provides helpers for testing elements
package test

import (
	"net/netip"

	"github.com/pion/dataplane/pkg/packet"
)

// Flow builds segments of one TCP connection as seen by an element placed
// at the local end.
type Flow struct {
	Local, Remote         netip.Addr
	LocalPort, RemotePort uint16
	TOS                   uint8
}

// DefaultFlow returns a flow between two documentation addresses.
func DefaultFlow() Flow {
	return Flow{
		Local:      netip.MustParseAddr("192.0.2.10"),
		Remote:     netip.MustParseAddr("198.51.100.20"),
		LocalPort:  40000,
		RemotePort: 443,
		TOS:        0x08,
	}
}

// Inbound returns a segment sent by the remote end.
func (f Flow) Inbound(seq, ack uint32, flags uint8, payloadLen int) *packet.Packet {
	return packet.Marshal(&packet.Fields{
		Src:     f.Remote,
		Dst:     f.Local,
		SrcPort: f.RemotePort,
		DstPort: f.LocalPort,
		Seq:     seq,
		Ack:     ack,
		Flags:   flags,
		Window:  65535,
		TOS:     f.TOS,
		TTL:     64,
	}, make([]byte, payloadLen))
}

// Outbound returns a segment sent by the local end.
func (f Flow) Outbound(seq, ack uint32, flags uint8, payloadLen int) *packet.Packet {
	return packet.Marshal(&packet.Fields{
		Src:     f.Local,
		Dst:     f.Remote,
		SrcPort: f.LocalPort,
		DstPort: f.RemotePort,
		Seq:     seq,
		Ack:     ack,
		Flags:   flags,
		Window:  65535,
		TTL:     64,
	}, make([]byte, payloadLen))
}

// Data returns an inbound data segment with ACK set.
func (f Flow) Data(seq uint32, payloadLen int) *packet.Packet {
	return f.Inbound(seq, 0, packet.FlagAck|packet.FlagPsh, payloadLen)
}

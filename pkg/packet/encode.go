// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packet

import (
	"net/netip"

	"github.com/google/netstack/tcpip"
	"github.com/google/netstack/tcpip/header"
)

// Fields describes the header values of an IPv4/TCP segment without options.
type Fields struct {
	Src, Dst         netip.Addr
	SrcPort, DstPort uint16
	Seq, Ack         uint32
	Flags            uint8
	Window           uint16
	TOS              uint8
	TTL              uint8
	ID               uint16
	DontFragment     bool
}

// Encode writes the headers described by f followed by payload into b and
// returns the number of bytes written. b must hold SegmentSize+len(payload)
// bytes. Both checksums are left zero.
func Encode(b []byte, f *Fields, payload []byte) int {
	n := SegmentSize + len(payload)
	b = b[:n]

	var ipFlags uint8
	if f.DontFragment {
		ipFlags = header.IPv4FlagDontFragment
	}
	header.IPv4(b).Encode(&header.IPv4Fields{
		IHL:         header.IPv4MinimumSize,
		TOS:         f.TOS,
		TotalLength: uint16(n),
		ID:          f.ID,
		Flags:       ipFlags,
		TTL:         f.TTL,
		Protocol:    uint8(header.TCPProtocolNumber),
		SrcAddr:     address(f.Src),
		DstAddr:     address(f.Dst),
	})
	header.TCP(b[header.IPv4MinimumSize:]).Encode(&header.TCPFields{
		SrcPort:    f.SrcPort,
		DstPort:    f.DstPort,
		SeqNum:     f.Seq,
		AckNum:     f.Ack,
		DataOffset: header.TCPMinimumSize,
		Flags:      f.Flags,
		WindowSize: f.Window,
	})
	copy(b[SegmentSize:], payload)

	return n
}

// Marshal returns a new packet holding the encoded segment.
func Marshal(f *Fields, payload []byte) *Packet {
	b := make([]byte, SegmentSize+len(payload))
	Encode(b, f, payload)

	return &Packet{data: b, buf: newBuffer(b, nil)}
}

func address(a netip.Addr) tcpip.Address {
	if !a.IsValid() {
		return tcpip.Address(make([]byte, header.IPv4AddressSize))
	}

	return tcpip.Address(a.Unmap().AsSlice())
}

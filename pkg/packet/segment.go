// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packet

import (
	"encoding/binary"
	"errors"
	"net/netip"

	"github.com/google/netstack/tcpip/header"
)

// TCP control flags.
const (
	FlagFin = uint8(header.TCPFlagFin)
	FlagSyn = uint8(header.TCPFlagSyn)
	FlagRst = uint8(header.TCPFlagRst)
	FlagPsh = uint8(header.TCPFlagPsh)
	FlagAck = uint8(header.TCPFlagAck)
	FlagUrg = uint8(header.TCPFlagUrg)
)

// SegmentSize is the size of a bare IPv4/TCP segment without options or payload.
const SegmentSize = header.IPv4MinimumSize + header.TCPMinimumSize

const (
	tosOffset         = 1
	totalLengthOffset = 2
	seqNumberOffset   = 4
	ackNumberOffset   = 8
)

var (
	errShortPacket    = errors.New("packet shorter than an IPv4 header")
	errNotIPv4        = errors.New("not an IPv4 packet")
	errIPHeaderLength = errors.New("invalid IPv4 header length")
	errIPTotalLength  = errors.New("invalid IPv4 total length")
	errNotTCP         = errors.New("not a TCP segment")
	errShortSegment   = errors.New("TCP segment shorter than its header")
	errTCPDataOffset  = errors.New("invalid TCP data offset")
	errTrimPastData   = errors.New("cannot trim more than the segment payload")
)

// Segment is a validated view of an IPv4 packet carrying TCP. It aliases the
// bytes it was parsed from.
type Segment struct {
	ip  header.IPv4
	tcp header.TCP
}

// ParseSegment validates the IPv4 and TCP headers in b and returns a view
// over them. Every offset used by Segment accessors is checked here.
func ParseSegment(b []byte) (Segment, error) {
	if len(b) < header.IPv4MinimumSize {
		return Segment{}, errShortPacket
	}
	if header.IPVersion(b) != header.IPv4Version {
		return Segment{}, errNotIPv4
	}

	ip := header.IPv4(b)
	hlen := int(ip.HeaderLength())
	if hlen < header.IPv4MinimumSize || hlen > len(b) {
		return Segment{}, errIPHeaderLength
	}
	total := int(ip.TotalLength())
	if total < hlen || total > len(b) {
		return Segment{}, errIPTotalLength
	}
	if ip.Protocol() != uint8(header.TCPProtocolNumber) {
		return Segment{}, errNotTCP
	}

	tcp := header.TCP(b[hlen:total])
	if len(tcp) < header.TCPMinimumSize {
		return Segment{}, errShortSegment
	}
	off := int(tcp.DataOffset())
	if off < header.TCPMinimumSize || off > len(tcp) {
		return Segment{}, errTCPDataOffset
	}

	return Segment{ip: ip[:total], tcp: tcp}, nil
}

// IP returns the IPv4 header view.
func (s Segment) IP() header.IPv4 {
	return s.ip
}

// TCP returns the TCP header view, payload included.
func (s Segment) TCP() header.TCP {
	return s.tcp
}

// Seq returns the sequence number.
func (s Segment) Seq() uint32 {
	return s.tcp.SequenceNumber()
}

// Ack returns the acknowledgment number.
func (s Segment) Ack() uint32 {
	return s.tcp.AckNumber()
}

// Flags returns the TCP control flags.
func (s Segment) Flags() uint8 {
	return uint8(s.tcp.Flags())
}

// HasFlags reports whether every flag in mask is set. Other flags may be set
// as well.
func (s Segment) HasFlags(mask uint8) bool {
	return s.Flags()&mask == mask
}

// HasAnyFlag reports whether at least one flag in mask is set.
func (s Segment) HasAnyFlag(mask uint8) bool {
	return s.Flags()&mask != 0
}

// IsSynAck reports whether both SYN and ACK are set.
func (s Segment) IsSynAck() bool {
	return s.HasFlags(FlagSyn | FlagAck)
}

// IsControl reports whether SYN, FIN or RST is set.
func (s Segment) IsControl() bool {
	return s.HasAnyFlag(FlagSyn | FlagFin | FlagRst)
}

// PayloadLen returns the number of payload bytes.
func (s Segment) PayloadLen() uint32 {
	return uint32(len(s.tcp) - int(s.tcp.DataOffset()))
}

// Start returns the first sequence number occupied by the segment.
func (s Segment) Start() uint32 {
	return s.Seq()
}

// SeqLen returns the sequence space consumed by the segment: the payload
// plus one for each of SYN and FIN.
func (s Segment) SeqLen() uint32 {
	n := s.PayloadLen()
	if s.HasFlags(FlagSyn) {
		n++
	}
	if s.HasFlags(FlagFin) {
		n++
	}

	return n
}

// End returns the sequence number following the segment.
func (s Segment) End() uint32 {
	return s.Start() + s.SeqLen()
}

// TOS returns the IPv4 type of service byte.
func (s Segment) TOS() uint8 {
	return s.ip[tosOffset]
}

// SrcPort returns the TCP source port.
func (s Segment) SrcPort() uint16 {
	return s.tcp.SourcePort()
}

// DstPort returns the TCP destination port.
func (s Segment) DstPort() uint16 {
	return s.tcp.DestinationPort()
}

// Src returns the IPv4 source address.
func (s Segment) Src() netip.Addr {
	return netip.AddrFrom4([4]byte([]byte(s.ip.SourceAddress())))
}

// Dst returns the IPv4 destination address.
func (s Segment) Dst() netip.Addr {
	return netip.AddrFrom4([4]byte([]byte(s.ip.DestinationAddress())))
}

// SetAck overwrites the acknowledgment number. The underlying bytes must be
// writable.
func (s Segment) SetAck(ack uint32) {
	binary.BigEndian.PutUint32(s.tcp[ackNumberOffset:], ack)
}

// TrimFront returns a copy of the segment carried by p without its first n
// payload bytes, its sequence number moved forward by n. On success p is
// released. Checksums are not updated.
func TrimFront(p *Packet, n uint32) (*Packet, error) {
	seg, err := ParseSegment(p.Bytes())
	if err != nil {
		return nil, err
	}
	if n > seg.PayloadLen() {
		return nil, errTrimPastData
	}

	hlen := int(seg.ip.HeaderLength())
	headers := len(seg.ip) - int(seg.PayloadLen())
	b := make([]byte, len(seg.ip)-int(n))
	copy(b, seg.ip[:headers])
	copy(b[headers:], seg.ip[headers+int(n):])
	binary.BigEndian.PutUint16(b[totalLengthOffset:], uint16(len(b)))
	binary.BigEndian.PutUint32(b[hlen+seqNumberOffset:], seg.Seq()+n)

	p.Release()

	return &Packet{data: b, buf: newBuffer(b, nil)}, nil
}

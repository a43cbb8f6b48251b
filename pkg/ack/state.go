// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"net/netip"

	"github.com/pion/dataplane/pkg/packet"
)

// HeaderTemplate holds the addressing of the flow as seen on an inbound
// segment. Acknowledgments travel the opposite way.
type HeaderTemplate struct {
	Src, Dst         netip.Addr
	SrcPort, DstPort uint16
	TOS              uint8
}

// FlowState is the acknowledgment state of one tracked flow.
type FlowState struct {
	// Synchronized is set once a SYN-ACK was seen in either direction.
	Synchronized bool
	NextSendSeq  uint32
	NextRecvAck  uint32
	// AckOwed is set when received data has not been acknowledged yet.
	AckOwed    bool
	TimerArmed bool

	Template         HeaderTemplate
	TemplateCaptured bool
}

func (s *FlowState) synchronizeInbound(seg packet.Segment) {
	s.NextSendSeq = seg.Ack()
	s.NextRecvAck = seg.Seq() + 1
	s.Synchronized = true
}

func (s *FlowState) synchronizeOutbound(seg packet.Segment) {
	s.NextSendSeq = seg.Seq() + 1
	s.NextRecvAck = seg.Ack()
	s.Synchronized = true
}

// captureTemplate records the addressing of seg unless a template exists.
func (s *FlowState) captureTemplate(seg packet.Segment) {
	if s.TemplateCaptured {
		return
	}
	s.Template = HeaderTemplate{
		Src:     seg.Src(),
		Dst:     seg.Dst(),
		SrcPort: seg.SrcPort(),
		DstPort: seg.DstPort(),
		TOS:     seg.TOS(),
	}
	s.TemplateCaptured = true
}

// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
)

const (
	ackWindow = 32120
	ackTTL    = 255
)

// synthesize builds a bare acknowledgment for the current state. It returns
// nil when no buffer could be allocated. Callers hold e.mu.
func (e *Element) synthesize() *packet.Packet {
	pkt, err := e.pool.Get(packet.SegmentSize)
	if err != nil {
		e.stats.AllocFailures++
		e.log.Warnf("dropping acknowledgment %d: %v", e.state.NextRecvAck, err)

		return nil
	}

	tmpl := e.state.Template
	packet.Encode(pkt.Bytes(), &packet.Fields{
		Src:          tmpl.Dst,
		Dst:          tmpl.Src,
		SrcPort:      tmpl.DstPort,
		DstPort:      tmpl.SrcPort,
		Seq:          e.state.NextSendSeq,
		Ack:          e.state.NextRecvAck,
		Flags:        packet.FlagAck,
		Window:       ackWindow,
		TOS:          tmpl.TOS,
		TTL:          ackTTL,
		DontFragment: true,
	}, nil)
	e.stats.AcksSent++

	return pkt
}

func (e *Element) send(pkt *packet.Packet, writer dataplane.Writer) {
	if writer == nil {
		e.mu.Lock()
		e.stats.AckPortDrops++
		e.mu.Unlock()
		e.log.Warn("no writer bound to the ack port, dropping acknowledgment")
		pkt.Release()

		return
	}

	if err := writer.Write(pkt, make(dataplane.Attributes)); err != nil {
		e.log.Warnf("failed writing acknowledgment: %v", err)
	}
}

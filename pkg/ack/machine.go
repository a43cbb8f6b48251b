// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"fmt"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
)

// observeIncoming updates the flow state with a received segment. Received
// segments are always forwarded.
func (e *Element) observeIncoming(pkt *packet.Packet, attributes dataplane.Attributes) {
	seg, err := attributes.GetSegment(pkt.Bytes())

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		if !e.state.Synchronized {
			e.stats.Malformed++
		}

		return
	}

	if !e.state.Synchronized {
		if !seg.IsSynAck() {
			return
		}
		e.state.synchronizeInbound(seg)
		e.log.Debugf("synchronized on inbound SYN-ACK: snd.nxt=%d rcv.nxt=%d",
			e.state.NextSendSeq, e.state.NextRecvAck)
	}
	e.state.captureTemplate(seg)

	if seg.IsControl() {
		return
	}

	if seg.Start() == e.state.NextRecvAck {
		e.state.NextRecvAck += seg.SeqLen()
		next, ok := e.buffer.NextMissingSeq(e.state.NextRecvAck)
		if !ok {
			panic(fmt.Errorf("%w: no missing sequence after %d", errBufferOutOfSync, e.state.NextRecvAck))
		}
		e.state.NextRecvAck = next

		e.inRate.Update(int64(seg.PayloadLen()))
		e.segSize.Update(float64(seg.PayloadLen()))
	} else {
		e.stats.OutOfOrder++
		if e.oooLimiter.Allow() {
			e.log.Debugf("out of order segment seq=%d len=%d, expected %d (%d so far)",
				seg.Start(), seg.SeqLen(), e.state.NextRecvAck, e.stats.OutOfOrder)
		}
	}

	e.state.AckOwed = true
	if !e.state.TimerArmed {
		e.state.TimerArmed = true
		e.timer.ScheduleAfter(e.delay)
	}
}

// observeOutgoing updates the flow state with a segment sent by the local
// end and stamps it with the current acknowledgment number. It reports
// whether the segment may be forwarded.
func (e *Element) observeOutgoing(pkt *packet.Packet, attributes dataplane.Attributes) bool {
	seg, err := attributes.GetSegment(pkt.Bytes())

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		if !e.state.Synchronized {
			e.stats.Malformed++
		}

		return e.state.Synchronized
	}

	if !e.state.Synchronized {
		if !seg.IsSynAck() {
			return false
		}
		e.state.synchronizeOutbound(seg)
		e.log.Debugf("synchronized on outbound SYN-ACK: snd.nxt=%d rcv.nxt=%d",
			e.state.NextSendSeq, e.state.NextRecvAck)
	}

	e.state.NextSendSeq = seg.End()
	e.state.AckOwed = false
	e.stats.Piggybacked++

	if pkt.Shared() {
		pkt.MakeWritable()
		if seg, err = packet.ParseSegment(pkt.Bytes()); err != nil {
			return true
		}
		attributes.SetSegment(seg)
	}
	seg.SetAck(e.state.NextRecvAck)

	return true
}

// flush runs when the delay timer expires.
func (e *Element) flush() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()

		return
	}
	e.state.TimerArmed = false
	if !e.state.AckOwed {
		e.mu.Unlock()

		return
	}
	e.state.AckOwed = false
	pkt := e.synthesize()
	writer := e.ackWriter
	e.mu.Unlock()

	if pkt == nil {
		return
	}
	e.send(pkt, writer)
}

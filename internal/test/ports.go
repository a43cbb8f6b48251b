// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package test

import (
	"sync"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
)

// CaptureWriter is a push port that keeps every packet written to it.
type CaptureWriter struct {
	mu      sync.Mutex
	packets []*packet.Packet
	Err     error
}

// Write implements dataplane.Writer.
func (w *CaptureWriter) Write(pkt *packet.Packet, _ dataplane.Attributes) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.packets = append(w.packets, pkt)

	return w.Err
}

// Packets returns the captured packets.
func (w *CaptureWriter) Packets() []*packet.Packet {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]*packet.Packet(nil), w.packets...)
}

// Len returns how many packets were captured.
func (w *CaptureWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.packets)
}

// Segments parses every captured packet. Unparseable packets are skipped.
func (w *CaptureWriter) Segments() []packet.Segment {
	var segs []packet.Segment
	for _, p := range w.Packets() {
		if seg, err := packet.ParseSegment(p.Bytes()); err == nil {
			segs = append(segs, seg)
		}
	}

	return segs
}

// QueueReader is a pull port handing out queued packets, then nothing.
type QueueReader struct {
	mu      sync.Mutex
	packets []*packet.Packet
	Err     error
}

// Push queues packets for later reads.
func (r *QueueReader) Push(pkts ...*packet.Packet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets = append(r.packets, pkts...)
}

// Read implements dataplane.Reader.
func (r *QueueReader) Read(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, a, r.Err
	}
	if len(r.packets) == 0 {
		return nil, a, nil
	}
	pkt := r.packets[0]
	r.packets = r.packets[1:]

	return pkt, a, nil
}

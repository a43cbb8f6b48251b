// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package tcpbuffer implements a reassembly buffer for the received half of
// a TCP flow. It holds out-of-order segments until the gap before them is
// filled and answers which sequence number is the next one still missing.
package tcpbuffer

import (
	"maps"
	"sync"

	"github.com/google/btree"
	"github.com/google/netstack/tcpip/seqnum"
	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/logging"
)

const (
	defaultCapacity = 256
	btreeDegree     = 8
)

// Stats are counters kept by a Buffer.
type Stats struct {
	Buffered   int
	Delivered  uint64
	OutOfOrder uint64
	Duplicates uint64
	Overflows  uint64
	Trimmed    uint64
}

type entry struct {
	start seqnum.Value
	end   seqnum.Value
	pkt   *packet.Packet
	attrs dataplane.Attributes
}

func entryLess(a, b *entry) bool {
	return a.start.LessThan(b.start)
}

// Buffer is an Element on the inbound path that delivers data segments in
// sequence order. It also serves as the gap tracker of an ack.Element.
type Buffer struct {
	dataplane.NoOp

	mu       sync.Mutex
	segments *btree.BTreeG[*entry]
	ready    []*entry
	next     seqnum.Value
	started  bool
	capacity int
	stats    Stats
	log      logging.LeveledLogger
}

// New returns an empty Buffer.
func New(opts ...Option) (*Buffer, error) {
	b := &Buffer{
		segments: btree.NewG(btreeDegree, entryLess),
		capacity: defaultCapacity,
		log:      logging.NewDefaultLoggerFactory().NewLogger("tcpbuffer"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// NextMissingSeq returns the lowest sequence number at or after candidate
// that is not covered by a buffered segment. It reports false when candidate
// lies behind data the buffer has already delivered.
func (b *Buffer) NextMissingSeq(candidate uint32) (uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := seqnum.Value(candidate)
	if b.started && next.LessThan(b.next) {
		return candidate, false
	}

	b.segments.Ascend(func(e *entry) bool {
		if next.LessThan(e.start) {
			return false
		}
		if next.LessThan(e.end) {
			next = e.end
		}

		return true
	})

	return uint32(next), true
}

// Stats returns a snapshot of the buffer counters.
func (b *Buffer) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.stats
	s.Buffered = b.segments.Len()

	return s
}

// BindInbound delivers pushed segments to writer in sequence order.
func (b *Buffer) BindInbound(_ *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	return dataplane.WriterFunc(func(pkt *packet.Packet, attrs dataplane.Attributes) error {
		seg, err := attrs.GetSegment(pkt.Bytes())
		if err != nil {
			return writer.Write(pkt, attrs)
		}

		b.mu.Lock()
		ready := b.admit(pkt, attrs, seg)
		b.mu.Unlock()

		var firstErr error
		for _, e := range ready {
			if err := writer.Write(e.pkt, e.attrs); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		return firstErr
	})
}

// BindInboundReader pulls from reader until a segment can be returned in
// sequence order or the upstream has nothing more to give.
func (b *Buffer) BindInboundReader(_ *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	return dataplane.ReaderFunc(func(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
		for {
			b.mu.Lock()
			if len(b.ready) > 0 {
				e := b.ready[0]
				b.ready[0] = nil
				b.ready = b.ready[1:]
				b.mu.Unlock()

				return e.pkt, e.attrs, nil
			}
			b.mu.Unlock()

			pkt, attrs, err := reader.Read(a)
			if err != nil || pkt == nil {
				return pkt, attrs, err
			}

			seg, err := attrs.GetSegment(pkt.Bytes())
			if err != nil {
				return pkt, attrs, nil
			}

			b.mu.Lock()
			b.ready = append(b.ready, b.admit(pkt, attrs, seg)...)
			b.mu.Unlock()

			// attrs now belong to the admitted segment.
			a = dataplane.Attributes{}
		}
	})
}

// BindOutbound starts tracking from the acknowledgment of an outbound SYN-ACK
// when the flow is first seen in that direction.
func (b *Buffer) BindOutbound(_ *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	return dataplane.WriterFunc(func(pkt *packet.Packet, attrs dataplane.Attributes) error {
		b.observeOutgoing(pkt, attrs)

		return writer.Write(pkt, attrs)
	})
}

// BindOutboundReader is the pull form of BindOutbound.
func (b *Buffer) BindOutboundReader(_ *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	return dataplane.ReaderFunc(func(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
		pkt, attrs, err := reader.Read(a)
		if err == nil && pkt != nil {
			b.observeOutgoing(pkt, attrs)
		}

		return pkt, attrs, err
	})
}

func (b *Buffer) observeOutgoing(pkt *packet.Packet, attrs dataplane.Attributes) {
	seg, err := attrs.GetSegment(pkt.Bytes())
	if err != nil || !seg.IsSynAck() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		b.started = true
		b.next = seqnum.Value(seg.Ack())
	}
}

// UnbindFlow releases every held segment.
func (b *Buffer) UnbindFlow(_ *dataplane.FlowInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clear()
}

// Close releases every held segment.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clear()

	return nil
}

func (b *Buffer) clear() {
	b.segments.Ascend(func(e *entry) bool {
		e.pkt.Release()

		return true
	})
	b.segments.Clear(false)
	for _, e := range b.ready {
		e.pkt.Release()
	}
	b.ready = nil
}

// admit takes ownership of pkt and returns the segments that became
// deliverable, in order. The caller must hold the lock.
func (b *Buffer) admit(pkt *packet.Packet, attrs dataplane.Attributes, seg packet.Segment) []*entry {
	e := &entry{
		start: seqnum.Value(seg.Start()),
		end:   seqnum.Value(seg.End()),
		pkt:   pkt,
		attrs: attrs,
	}

	switch {
	case seg.HasFlags(packet.FlagSyn):
		if !b.started {
			b.started = true
			b.next = e.end
		}

		return []*entry{e}
	case seg.PayloadLen() == 0 || seg.IsControl():
		return []*entry{e}
	}

	if !b.started {
		b.started = true
		b.next = e.start
	}

	if e.end.LessThanEq(b.next) {
		b.stats.Duplicates++
		pkt.Release()

		return nil
	}

	if b.next.LessThan(e.start) {
		b.hold(e)

		return nil
	}

	// The delivery point only moves for a segment starting exactly at it.
	// One that starts inside delivered data keeps its new bytes until the
	// stream reaches them.
	if e.start != b.next {
		if b.trim(e) {
			b.hold(e)
		}

		return nil
	}

	b.next = e.end
	b.stats.Delivered++
	ready := []*entry{e}

	for {
		head, ok := b.segments.Min()
		if !ok || b.next.LessThan(head.start) {
			break
		}
		b.segments.DeleteMin()

		if head.end.LessThanEq(b.next) {
			b.stats.Duplicates++
			head.pkt.Release()

			continue
		}
		if head.start != b.next && !b.trim(head) {
			continue
		}

		b.next = head.end
		b.stats.Delivered++
		ready = append(ready, head)
	}

	return ready
}

// trim cuts the bytes of e that lie before the delivery point. It reports
// false, having released e, when the packet cannot be rewritten.
func (b *Buffer) trim(e *entry) bool {
	pkt, err := packet.TrimFront(e.pkt, uint32(b.next)-uint32(e.start))
	if err != nil {
		b.log.Warnf("cannot trim segment [%d, %d) to %d: %v", uint32(e.start), uint32(e.end), uint32(b.next), err)
		e.pkt.Release()

		return false
	}

	e.pkt = pkt
	e.start = b.next
	e.attrs = maps.Clone(e.attrs)
	if e.attrs == nil {
		e.attrs = dataplane.Attributes{}
	}
	e.attrs.ClearSegment()
	b.stats.Trimmed++

	return true
}

func (b *Buffer) hold(e *entry) {
	if old, ok := b.segments.Get(e); ok {
		b.stats.Duplicates++
		if old.end.LessThan(e.end) {
			old.pkt.Release()
			b.segments.ReplaceOrInsert(e)
		} else {
			e.pkt.Release()
		}

		return
	}

	if b.segments.Len() >= b.capacity {
		b.stats.Overflows++
		b.log.Warnf("reassembly buffer full (%d segments), dropping seq %d", b.capacity, uint32(e.start))
		e.pkt.Release()

		return
	}

	b.segments.ReplaceOrInsert(e)
	b.stats.OutOfOrder++
	b.log.Tracef("holding out-of-order segment [%d, %d), next %d", uint32(e.start), uint32(e.end), uint32(b.next))
}

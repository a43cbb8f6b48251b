// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ack provides an element that acknowledges the received half of a
// TCP flow on behalf of the local end. Owed acknowledgments are held back
// for a short delay so that outgoing data can carry them; when none leaves
// in time a bare ACK segment is synthesized.
package ack

import (
	"errors"
	"sync"
	"time"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/ewma"
	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/dataplane/pkg/tcpbuffer"
	"github.com/pion/logging"
	"golang.org/x/time/rate"
)

const (
	defaultAckDelay = 20 * time.Millisecond

	segmentSizeAlpha = 0.125
	ratePeriod       = time.Second
)

var (
	// ErrNoReassemblyBuffer is returned when an Element is built without the
	// buffer tracking gaps in the received sequence space.
	ErrNoReassemblyBuffer = errors.New("ack element requires a reassembly buffer")
	// ErrInvalidAckDelay is returned for a negative acknowledgment delay.
	ErrInvalidAckDelay = errors.New("ack delay must not be negative")

	errBufferOutOfSync = errors.New("reassembly buffer lost track of the received sequence")
)

// ReassemblyBuffer tracks which parts of the received sequence space are
// held out of order.
type ReassemblyBuffer interface {
	// NextMissingSeq returns the first sequence number at or after candidate
	// that has not been received. It reports false when candidate lies behind
	// data the buffer already delivered.
	NextMissingSeq(candidate uint32) (uint32, bool)
}

// Stats are counters kept by an Element.
type Stats struct {
	AcksSent      uint64
	Piggybacked   uint64
	OutOfOrder    uint64
	AllocFailures uint64
	Malformed     uint64
	AckPortDrops  uint64

	// InboundBytesPerSecond averages in-order payload bytes over about a second.
	InboundBytesPerSecond float64
	MeanSegmentSize       float64
}

// Element acknowledges received data of one flow. Port 0 (inbound) carries
// received segments, port 1 (outbound) segments sent by the local end, and
// the ACK port synthesized acknowledgments.
type Element struct {
	dataplane.NoOp

	mu         sync.Mutex
	state      FlowState
	stats      Stats
	buffer     ReassemblyBuffer
	delay      time.Duration
	timer      Timer
	newTimer   TimerFactory
	pool       *packet.Pool
	ackWriter  dataplane.Writer
	now        func() time.Time
	inRate     *ewma.Rate
	segSize    *ewma.Average
	oooLimiter *rate.Limiter
	closed     bool
	bufferOpts []tcpbuffer.Option
	log        logging.LeveledLogger
}

// New returns an Element consulting buf for gaps in the received data.
func New(buf ReassemblyBuffer, opts ...Option) (*Element, error) {
	if buf == nil {
		return nil, ErrNoReassemblyBuffer
	}

	e, err := newElement(opts...)
	if err != nil {
		return nil, err
	}
	e.buffer = buf

	return e, nil
}

func newElement(opts ...Option) (*Element, error) {
	e := &Element{
		delay:      defaultAckDelay,
		newTimer:   newAfterFuncTimer,
		now:        time.Now,
		segSize:    ewma.NewAverage(segmentSizeAlpha),
		oooLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:        logging.NewDefaultLoggerFactory().NewLogger("tcp_ack"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.pool == nil {
		e.pool = packet.NewPool(packet.SegmentSize)
	}

	inRate, err := ewma.NewRate(ratePeriod, ewma.WithClock(e.now))
	if err != nil {
		return nil, err
	}
	e.inRate = inRate
	e.timer = e.newTimer(e.flush)

	return e, nil
}

// State returns a copy of the flow state.
func (e *Element) State() FlowState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Stats returns a snapshot of the element counters.
func (e *Element) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := e.stats
	stats.InboundBytesPerSecond = e.inRate.PerSecond()
	stats.MeanSegmentSize = e.segSize.Value()

	return stats
}

// BindAckWriter sets the port synthesized acknowledgments are pushed to.
func (e *Element) BindAckWriter(writer dataplane.Writer) dataplane.Writer {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ackWriter = writer

	return writer
}

// BindInbound observes every received segment pushed through the pipeline.
func (e *Element) BindInbound(_ *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	return dataplane.WriterFunc(func(pkt *packet.Packet, attributes dataplane.Attributes) error {
		e.observeIncoming(pkt, attributes)

		return writer.Write(pkt, attributes)
	})
}

// BindInboundReader observes every received segment pulled through the
// pipeline.
func (e *Element) BindInboundReader(_ *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	return dataplane.ReaderFunc(func(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
		pkt, attr, err := reader.Read(a)
		if err != nil || pkt == nil {
			return pkt, attr, err
		}
		if attr == nil {
			attr = make(dataplane.Attributes)
		}
		e.observeIncoming(pkt, attr)

		return pkt, attr, nil
	})
}

// BindOutbound stamps the current acknowledgment number on every segment
// pushed towards the peer. Segments sent before the handshake was seen are
// dropped.
func (e *Element) BindOutbound(_ *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	return dataplane.WriterFunc(func(pkt *packet.Packet, attributes dataplane.Attributes) error {
		if !e.observeOutgoing(pkt, attributes) {
			pkt.Release()

			return nil
		}

		return writer.Write(pkt, attributes)
	})
}

// BindOutboundReader is the pull variant of BindOutbound. A dropped segment
// is reported as no packet.
func (e *Element) BindOutboundReader(_ *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	return dataplane.ReaderFunc(func(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
		pkt, attr, err := reader.Read(a)
		if err != nil || pkt == nil {
			return pkt, attr, err
		}
		if attr == nil {
			attr = make(dataplane.Attributes)
		}
		if !e.observeOutgoing(pkt, attr) {
			pkt.Release()

			return nil, attr, nil
		}

		return pkt, attr, nil
	})
}

// UnbindFlow stops the pending flush, if any, and forgets the owed
// acknowledgment.
func (e *Element) UnbindFlow(_ *dataplane.FlowInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimer()
	e.state.AckOwed = false
}

// Close stops the element. Acknowledgments still owed are not sent.
func (e *Element) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.stopTimer()

	return nil
}

func (e *Element) stopTimer() {
	e.timer.Stop()
	e.state.TimerArmed = false
}

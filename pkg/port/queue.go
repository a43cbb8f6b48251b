// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package port provides a queue joining the push half of a pipeline to its
// pull half.
package port

import (
	"errors"
	"io"
	"sync"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/logging"
	"github.com/pion/transport/v3/packetio"
)

const (
	defaultLimit = 1000
	defaultMTU   = 1500
)

// ErrInvalidLimit is returned when the queue limit is not positive.
var ErrInvalidLimit = errors.New("queue limit must be positive")

// Option can be used to configure a Queue.
type Option func(q *Queue) error

// Limit sets how many packets the queue holds before dropping.
func Limit(n int) Option {
	return func(q *Queue) error {
		if n <= 0 {
			return ErrInvalidLimit
		}
		q.limit = n

		return nil
	}
}

// MTU sets the largest packet the queue accepts.
func MTU(n int) Option {
	return func(q *Queue) error {
		q.mtu = n

		return nil
	}
}

// WithPool sets the pool packets handed out by Read are allocated from.
func WithPool(pool *packet.Pool) Option {
	return func(q *Queue) error {
		q.pool = pool

		return nil
	}
}

// WithLoggerFactory sets a logger factory for the queue.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(q *Queue) error {
		q.log = loggerFactory.NewLogger("queue")

		return nil
	}
}

// Queue is a Writer on its input side and a Reader on its output side.
// Packets are copied in; attributes do not cross the queue. Read never
// blocks and expects a single consumer.
type Queue struct {
	buffer *packetio.Buffer
	pool   *packet.Pool
	limit  int
	mtu    int
	log    logging.LeveledLogger

	mu      sync.Mutex
	dropped uint64
	closed  bool
}

// NewQueue returns an empty Queue.
func NewQueue(opts ...Option) (*Queue, error) {
	q := &Queue{
		buffer: packetio.NewBuffer(),
		limit:  defaultLimit,
		mtu:    defaultMTU,
		log:    logging.NewDefaultLoggerFactory().NewLogger("queue"),
	}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	if q.pool == nil {
		q.pool = packet.NewPool(q.mtu)
	}
	q.buffer.SetLimitCount(q.limit)

	return q, nil
}

// Write copies pkt into the queue and releases it. A full queue drops the
// packet, as does one longer than the MTU.
func (q *Queue) Write(pkt *packet.Packet, _ dataplane.Attributes) error {
	defer pkt.Release()

	if pkt.Len() > q.mtu {
		q.drop("packet of %d bytes exceeds MTU %d", pkt.Len(), q.mtu)

		return nil
	}

	_, err := q.buffer.Write(pkt.Bytes())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, packetio.ErrFull):
		q.drop("queue full")

		return nil
	default:
		return err
	}
}

func (q *Queue) drop(format string, args ...interface{}) {
	q.mu.Lock()
	q.dropped++
	dropped := q.dropped
	q.mu.Unlock()
	q.log.Debugf(format+", %d packets dropped", append(args, dropped)...)
}

// Read returns the oldest queued packet, or no packet when the queue is
// empty. It returns io.EOF once the queue is closed.
func (q *Queue) Read(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return nil, a, io.EOF
	}
	if q.buffer.Count() == 0 {
		return nil, a, nil
	}

	pkt, err := q.pool.Get(q.mtu)
	if err != nil {
		q.log.Warnf("leaving packet queued: %v", err)

		return nil, a, nil
	}
	n, err := q.buffer.Read(pkt.Bytes())
	if err != nil {
		pkt.Release()

		return nil, a, err
	}
	pkt.Truncate(n)

	return pkt, make(dataplane.Attributes), nil
}

// Len returns the number of queued packets.
func (q *Queue) Len() int {
	return q.buffer.Count()
}

// Dropped returns how many packets were dropped because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.dropped
}

// Close discards queued packets. Later writes fail and reads return io.EOF.
func (q *Queue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	return q.buffer.Close()
}

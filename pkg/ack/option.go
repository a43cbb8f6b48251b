// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"time"

	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/dataplane/pkg/tcpbuffer"
	"github.com/pion/logging"
)

// Option can be used to configure an Element.
type Option func(e *Element) error

// AckDelay sets how long an owed acknowledgment may be held back waiting for
// outgoing data to carry it.
func AckDelay(d time.Duration) Option {
	return func(e *Element) error {
		if d < 0 {
			return ErrInvalidAckDelay
		}
		e.delay = d

		return nil
	}
}

// AckDelayMillis is AckDelay expressed in whole milliseconds.
func AckDelayMillis(ms int) Option {
	return func(e *Element) error {
		if ms < 0 {
			return ErrInvalidAckDelay
		}
		e.delay = time.Duration(ms) * time.Millisecond

		return nil
	}
}

// WithLoggerFactory sets a logger factory for the element.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(e *Element) error {
		e.log = loggerFactory.NewLogger("tcp_ack")

		return nil
	}
}

// WithTimerFactory replaces the timer used to flush owed acknowledgments.
func WithTimerFactory(f TimerFactory) Option {
	return func(e *Element) error {
		e.newTimer = f

		return nil
	}
}

// WithPool sets the pool acknowledgment segments are allocated from.
func WithPool(pool *packet.Pool) Option {
	return func(e *Element) error {
		e.pool = pool

		return nil
	}
}

// WithClock sets the time source of the inbound rate estimate.
func WithClock(now func() time.Time) Option {
	return func(e *Element) error {
		e.now = now

		return nil
	}
}

// WithBufferOptions sets the options of the reassembly buffer an
// ElementFactory builds next to each Element. New ignores it.
func WithBufferOptions(opts ...tcpbuffer.Option) Option {
	return func(e *Element) error {
		e.bufferOpts = append(e.bufferOpts, opts...)

		return nil
	}
}

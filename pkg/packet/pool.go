// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packet

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrPoolExhausted is returned by Pool.Get when the pool has handed out
	// its configured number of buffers.
	ErrPoolExhausted = errors.New("packet pool exhausted")
	// ErrTooLarge is returned by Pool.Get for sizes above the pool buffer size.
	ErrTooLarge = errors.New("requested packet larger than pool buffer size")
)

// PoolOption configures a Pool.
type PoolOption func(p *Pool)

// WithLimit caps the number of buffers that may be outstanding at once.
// Zero means unlimited.
func WithLimit(limit int) PoolOption {
	return func(p *Pool) {
		p.limit = int64(limit)
	}
}

// Pool hands out fixed-capacity packet buffers and reuses them on release.
type Pool struct {
	size  int
	limit int64
	inUse atomic.Int64
	pool  sync.Pool
}

// NewPool returns a pool of buffers with capacity size.
func NewPool(size int, opts ...PoolOption) *Pool {
	p := &Pool{size: size}
	p.pool.New = func() interface{} {
		b := make([]byte, size)

		return &b
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Get returns a zeroed packet of length n. It never blocks; when no buffer
// may be handed out it returns ErrPoolExhausted.
func (p *Pool) Get(n int) (*Packet, error) {
	if n > p.size {
		return nil, ErrTooLarge
	}
	if p.limit > 0 {
		if p.inUse.Add(1) > p.limit {
			p.inUse.Add(-1)

			return nil, ErrPoolExhausted
		}
	} else {
		p.inUse.Add(1)
	}

	bp, _ := p.pool.Get().(*[]byte)
	b := (*bp)[:n]
	clear(b)

	return &Packet{data: b, buf: newBuffer(b, p)}, nil
}

// InUse returns the number of buffers currently handed out.
func (p *Pool) InUse() int {
	return int(p.inUse.Load())
}

func (p *Pool) put(buf *buffer) {
	b := buf.b[:p.size]
	p.pool.Put(&b)
	p.inUse.Add(-1)
}

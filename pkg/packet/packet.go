// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package packet provides pooled, reference counted packet buffers and
// bounds-checked views over the IPv4 and TCP headers they carry.
package packet

import "sync/atomic"

// Packet is a handle to a datagram. Several handles may share one buffer
// after Clone; MakeWritable gives a handle its own copy before mutation.
//
// A Packet is owned by exactly one pipeline stage at a time. The stage that
// drops a packet must Release it.
type Packet struct {
	data []byte
	buf  *buffer
}

type buffer struct {
	b    []byte
	refs atomic.Int32
	pool *Pool
}

func newBuffer(b []byte, pool *Pool) *buffer {
	buf := &buffer{b: b, pool: pool}
	buf.refs.Store(1)

	return buf
}

// New returns a packet holding a copy of b. The buffer is not pooled.
func New(b []byte) *Packet {
	data := make([]byte, len(b))
	copy(data, b)

	return &Packet{data: data, buf: newBuffer(data, nil)}
}

// Bytes returns the packet contents. The slice must not be modified while
// Shared reports true.
func (p *Packet) Bytes() []byte {
	return p.data
}

// Len returns the packet length in bytes.
func (p *Packet) Len() int {
	return len(p.data)
}

// Truncate shortens the packet to n bytes. It has no effect when n is not
// smaller than Len.
func (p *Packet) Truncate(n int) {
	if n >= 0 && n < len(p.data) {
		p.data = p.data[:n]
	}
}

// Clone returns a new handle sharing the buffer of p.
func (p *Packet) Clone() *Packet {
	p.buf.refs.Add(1)

	return &Packet{data: p.data, buf: p.buf}
}

// Shared reports whether other handles reference the same buffer.
func (p *Packet) Shared() bool {
	return p.buf != nil && p.buf.refs.Load() > 1
}

// MakeWritable gives p a private copy of its buffer if it is shared, so that
// the bytes returned by Bytes can be modified in place.
func (p *Packet) MakeWritable() {
	if !p.Shared() {
		return
	}

	data := make([]byte, len(p.data))
	copy(data, p.data)
	old := p.buf
	p.data = data
	p.buf = newBuffer(data, nil)
	old.release()
}

// Release drops this handle. The buffer goes back to its pool once the last
// handle is released. Releasing twice is a no-op.
func (p *Packet) Release() {
	if p == nil || p.buf == nil {
		return
	}
	p.buf.release()
	p.buf = nil
	p.data = nil
}

func (b *buffer) release() {
	if b.refs.Add(-1) != 0 {
		return
	}
	if b.pool != nil {
		b.pool.put(b)
	}
}

// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tcpbuffer

import (
	"errors"

	"github.com/pion/logging"
)

// ErrInvalidCapacity is returned when the buffer capacity is not positive.
var ErrInvalidCapacity = errors.New("buffer capacity must be positive")

// Option can be used to configure a Buffer.
type Option func(b *Buffer) error

// Capacity sets how many out-of-order segments may be held at once.
func Capacity(n int) Option {
	return func(b *Buffer) error {
		if n <= 0 {
			return ErrInvalidCapacity
		}
		b.capacity = n

		return nil
	}
}

// WithLoggerFactory sets a logger factory for the buffer.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(b *Buffer) error {
		b.log = loggerFactory.NewLogger("tcpbuffer")

		return nil
	}
}

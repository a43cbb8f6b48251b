// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ewma implements exponentially weighted moving averages used to
// estimate packet and byte rates.
package ewma

import (
	"errors"
	"time"
)

const (
	meterScale = 30
	fracBits   = 10

	defaultTick = 10 * time.Millisecond
)

var (
	// ErrInvalidHalfLife is returned when the averaging period is not positive.
	ErrInvalidHalfLife = errors.New("ewma averaging period must be positive")
	// ErrInvalidTick is returned when the tick length is not positive.
	ErrInvalidTick = errors.New("ewma tick must be positive")
)

// RateOption configures a Rate.
type RateOption func(r *Rate) error

// WithTick sets the length of one averaging bucket.
func WithTick(d time.Duration) RateOption {
	return func(r *Rate) error {
		if d <= 0 {
			return ErrInvalidTick
		}
		r.tick = d

		return nil
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) RateOption {
	return func(r *Rate) error {
		r.now = now

		return nil
	}
}

// Rate averages a count accumulated over fixed-length ticks. Counts are kept
// in fixed point; the average moves towards each completed tick's count by
// 1/2^shift and decays towards zero for every tick with no updates.
type Rate struct {
	now   func() time.Time
	tick  time.Duration
	epoch time.Time

	lastTick int64
	current  int64
	avg      int64
	shift    uint
}

// NewRate returns a Rate whose memory spans roughly period.
func NewRate(period time.Duration, opts ...RateOption) (*Rate, error) {
	if period <= 0 {
		return nil, ErrInvalidHalfLife
	}

	r := &Rate{
		now:  time.Now,
		tick: defaultTick,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	ticks := int64(period / r.tick)
	var shift uint
	for shift = 0; shift < meterScale; shift++ {
		if int64(1)<<shift > (ticks+1)/2 {
			break
		}
	}
	if shift == meterScale {
		shift--
	}
	r.shift = shift
	r.epoch = r.now()

	return r, nil
}

// Update adds delta to the count of the current tick.
func (r *Rate) Update(delta int64) {
	r.advance()
	r.current += delta
}

// Average returns the average count per tick, scaled by 2^Scale.
func (r *Rate) Average() int64 {
	r.advance()

	return r.avg >> (meterScale - fracBits)
}

// Scale returns the number of fractional bits in Average.
func (r *Rate) Scale() int {
	return fracBits
}

// StabilityShift returns the weight exponent of the average.
func (r *Rate) StabilityShift() uint {
	return r.shift
}

// PerSecond returns the average converted to a count per second.
func (r *Rate) PerSecond() float64 {
	perTick := float64(r.Average()) / float64(int64(1)<<fracBits)

	return perTick * float64(time.Second) / float64(r.tick)
}

func (r *Rate) advance() {
	j := int64(r.now().Sub(r.epoch) / r.tick)
	if j == r.lastTick {
		return
	}

	var compensation int64
	if r.shift > 0 {
		compensation = int64(1) << (r.shift - 1)
	}
	r.avg += (r.current<<meterScale - r.avg + compensation) >> r.shift

	idle := j - r.lastTick - 1
	if idle > int64(meterScale)<<r.shift {
		r.avg = 0
	} else {
		for ; idle > 0; idle-- {
			r.avg += (-r.avg + compensation) >> r.shift
		}
	}

	r.lastTick = j
	r.current = 0
}

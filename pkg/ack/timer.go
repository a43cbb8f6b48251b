// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"sync"
	"time"
)

// Timer is a single-shot timer. ScheduleAfter on a pending timer has no
// effect.
type Timer interface {
	ScheduleAfter(d time.Duration)
	Scheduled() bool
	Stop()
}

// TimerFactory returns a Timer that calls fire each time it expires.
type TimerFactory func(fire func()) Timer

type afterFuncTimer struct {
	mu        sync.Mutex
	timer     *time.Timer
	scheduled bool
	// gen identifies the pending expiry. A callback from an earlier
	// schedule that raced with Stop sees a different value and does nothing.
	gen  uint64
	fire func()
}

func newAfterFuncTimer(fire func()) Timer {
	return &afterFuncTimer{fire: fire}
}

func (t *afterFuncTimer) ScheduleAfter(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.scheduled {
		return
	}
	t.scheduled = true
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(d, func() { t.expire(gen) })
}

func (t *afterFuncTimer) Scheduled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.scheduled
}

func (t *afterFuncTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	t.scheduled = false
}

func (t *afterFuncTimer) expire(gen uint64) {
	t.mu.Lock()
	if !t.scheduled || gen != t.gen {
		t.mu.Unlock()

		return
	}
	t.scheduled = false
	t.mu.Unlock()

	t.fire()
}

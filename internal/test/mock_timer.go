// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package test

import (
	"sync"
	"time"
)

// MockTimer is a helper to replace a single-shot timer for testing purposes.
// It records every scheduled delay and fires only when told to.
type MockTimer struct {
	mu        sync.Mutex
	fire      func()
	scheduled bool
	delays    []time.Duration
}

// Bind sets the callback run by Fire and returns the timer.
func (t *MockTimer) Bind(fire func()) *MockTimer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fire = fire

	return t
}

// ScheduleAfter arms the timer.
func (t *MockTimer) ScheduleAfter(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduled = true
	t.delays = append(t.delays, d)
}

// Scheduled reports whether the timer is armed.
func (t *MockTimer) Scheduled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.scheduled
}

// Stop disarms the timer without firing it.
func (t *MockTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scheduled = false
}

// Fire runs the callback if the timer is armed and reports whether it did.
func (t *MockTimer) Fire() bool {
	t.mu.Lock()
	if !t.scheduled {
		t.mu.Unlock()

		return false
	}
	t.scheduled = false
	fire := t.fire
	t.mu.Unlock()

	fire()

	return true
}

// Delays returns every delay passed to ScheduleAfter.
func (t *MockTimer) Delays() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]time.Duration(nil), t.delays...)
}

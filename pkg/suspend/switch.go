// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package suspend provides a push switch that moves a flow from one output
// to the next when the pipeline is resumed, for instance after the host was
// migrated or restored.
package suspend

import (
	"errors"
	"sync"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/logging"
)

var (
	// ErrNoOutputs is returned when a Switch is built without outputs.
	ErrNoOutputs = errors.New("suspend switch needs at least one output")
	// ErrNoNextOutput is returned by Resume on the last output.
	ErrNoNextOutput = errors.New("suspend switch has no output left to resume to")
)

// Option can be used to configure a Switch.
type Option func(s *Switch) error

// WithLoggerFactory sets a logger factory for the switch.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(s *Switch) error {
		s.log = loggerFactory.NewLogger("suspend_switch")

		return nil
	}
}

// Switch is a Writer forwarding every packet to its current output.
type Switch struct {
	mu        sync.Mutex
	outputs   []dataplane.Writer
	current   int
	suspended bool
	dropped   uint64
	log       logging.LeveledLogger
}

// New returns a Switch writing to the first of outputs.
func New(outputs []dataplane.Writer, opts ...Option) (*Switch, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}

	s := &Switch{
		outputs: outputs,
		log:     logging.NewDefaultLoggerFactory().NewLogger("suspend_switch"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Write forwards pkt to the current output, or releases it while suspended.
func (s *Switch) Write(pkt *packet.Packet, attributes dataplane.Attributes) error {
	s.mu.Lock()
	if s.suspended {
		s.dropped++
		s.mu.Unlock()
		pkt.Release()

		return nil
	}
	out := s.outputs[s.current]
	s.mu.Unlock()

	return out.Write(pkt, attributes)
}

// Suspend releases every packet written until the next Resume.
func (s *Switch) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = true
}

// Resume moves to the next output and lifts a suspension.
func (s *Switch) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current+1 >= len(s.outputs) {
		return ErrNoNextOutput
	}
	s.current++
	s.suspended = false
	s.log.Infof("resumed on output %d", s.current)

	return nil
}

// Current returns the index of the output packets are forwarded to.
func (s *Switch) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Dropped returns how many packets were released while suspended.
func (s *Switch) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dropped
}

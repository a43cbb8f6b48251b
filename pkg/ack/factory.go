// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/tcpbuffer"
)

// ElementFactory is a dataplane.Factory for acknowledging flows.
type ElementFactory struct {
	opts []Option
}

// NewElementFactory returns a new ElementFactory.
func NewElementFactory(opts ...Option) (*ElementFactory, error) {
	return &ElementFactory{opts: opts}, nil
}

// NewElement returns the elements acknowledging one flow: an Element
// followed by the reassembly buffer it consults. The buffer sits behind the
// Element on the inbound path so that it has not yet absorbed the segment the
// Element is looking at.
func (f *ElementFactory) NewElement(flowID string) (dataplane.Element, error) {
	elem, err := newElement(f.opts...)
	if err != nil {
		return nil, err
	}

	buf, err := tcpbuffer.New(elem.bufferOpts...)
	if err != nil {
		return nil, err
	}
	elem.buffer = buf
	elem.log.Debugf("acknowledging flow %s", flowID)

	return dataplane.NewChain([]dataplane.Element{elem, buf}), nil
}

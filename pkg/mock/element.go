// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package mock provides a mock Element for testing.
package mock

import (
	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
)

// Element is a mock Element for testing. Hooks left nil pass ports through.
type Element struct {
	BindAckWriterFn      func(writer dataplane.Writer) dataplane.Writer
	BindInboundFn        func(info *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer
	BindInboundReaderFn  func(info *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader
	BindOutboundFn       func(info *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer
	BindOutboundReaderFn func(info *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader
	UnbindFlowFn         func(info *dataplane.FlowInfo)
	CloseFn              func() error
}

// BindAckWriter implements dataplane.Element.
func (e *Element) BindAckWriter(writer dataplane.Writer) dataplane.Writer {
	if e.BindAckWriterFn != nil {
		return e.BindAckWriterFn(writer)
	}

	return writer
}

// BindInbound implements dataplane.Element.
func (e *Element) BindInbound(info *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	if e.BindInboundFn != nil {
		return e.BindInboundFn(info, writer)
	}

	return writer
}

// BindInboundReader implements dataplane.Element.
func (e *Element) BindInboundReader(info *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	if e.BindInboundReaderFn != nil {
		return e.BindInboundReaderFn(info, reader)
	}

	return reader
}

// BindOutbound implements dataplane.Element.
func (e *Element) BindOutbound(info *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	if e.BindOutboundFn != nil {
		return e.BindOutboundFn(info, writer)
	}

	return writer
}

// BindOutboundReader implements dataplane.Element.
func (e *Element) BindOutboundReader(info *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	if e.BindOutboundReaderFn != nil {
		return e.BindOutboundReaderFn(info, reader)
	}

	return reader
}

// UnbindFlow implements dataplane.Element.
func (e *Element) UnbindFlow(info *dataplane.FlowInfo) {
	if e.UnbindFlowFn != nil {
		e.UnbindFlowFn(info)
	}
}

// Close implements dataplane.Element.
func (e *Element) Close() error {
	if e.CloseFn != nil {
		return e.CloseFn()
	}

	return nil
}

// Writer is a mock Writer.
type Writer struct {
	WriteFn func(*packet.Packet, dataplane.Attributes) error
}

// Write implements dataplane.Writer.
func (w *Writer) Write(pkt *packet.Packet, attributes dataplane.Attributes) error {
	return w.WriteFn(pkt, attributes)
}

// Reader is a mock Reader.
type Reader struct {
	ReadFn func(dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error)
}

// Read implements dataplane.Reader.
func (r *Reader) Read(attributes dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
	return r.ReadFn(attributes)
}

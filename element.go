// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package dataplane contains the Element interface that packet processing
// stages implement, along with helpers to compose elements into a pipeline.
package dataplane

import (
	"io"

	"github.com/pion/dataplane/pkg/packet"
)

// FlowInfo describes the flow a set of ports belongs to.
type FlowInfo struct {
	ID         string
	Attributes Attributes
}

// Element is a processing stage of a pipeline. Every element sees the
// inbound (received) and outbound (to be sent) traffic of a flow through
// push or pull ports, and may emit packets of its own on the ACK port.
type Element interface {
	// BindAckWriter lets you observe or emit synthesized acknowledgments. It is
	// called once per flow. The returned writer is handed to the next element.
	BindAckWriter(writer Writer) Writer

	// BindInbound lets you modify any received packet pushed through the
	// pipeline. The returned writer will be called once per packet.
	BindInbound(info *FlowInfo, writer Writer) Writer

	// BindInboundReader lets you modify any received packet pulled through the
	// pipeline. The returned reader will be called once per pull.
	BindInboundReader(info *FlowInfo, reader Reader) Reader

	// BindOutbound lets you modify any packet about to be sent, push side.
	BindOutbound(info *FlowInfo, writer Writer) Writer

	// BindOutboundReader lets you modify any packet about to be sent, pull side.
	BindOutboundReader(info *FlowInfo, reader Reader) Reader

	// UnbindFlow is called when the flow is removed. It can be used to clean up
	// any data related to that flow.
	UnbindFlow(info *FlowInfo)

	io.Closer
}

// Writer is a push port. Write takes ownership of pkt whatever the result.
type Writer interface {
	Write(pkt *packet.Packet, attributes Attributes) error
}

// Reader is a pull port. Read returns a nil packet and a nil error when
// nothing is available; ownership of a returned packet passes to the caller.
type Reader interface {
	Read(attributes Attributes) (*packet.Packet, Attributes, error)
}

// WriterFunc is an adapter for Writer interface.
type WriterFunc func(pkt *packet.Packet, attributes Attributes) error

// ReaderFunc is an adapter for Reader interface.
type ReaderFunc func(attributes Attributes) (*packet.Packet, Attributes, error)

// Write a packet.
func (f WriterFunc) Write(pkt *packet.Packet, attributes Attributes) error {
	return f(pkt, attributes)
}

// Read a packet.
func (f ReaderFunc) Read(attributes Attributes) (*packet.Packet, Attributes, error) {
	return f(attributes)
}

// Discard is a Writer that releases every packet written to it.
var Discard Writer = WriterFunc(func(pkt *packet.Packet, _ Attributes) error { //nolint:gochecknoglobals
	pkt.Release()

	return nil
})

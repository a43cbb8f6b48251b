// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

import (
	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
)

// ElementFactory is a dataplane.Factory for an Element.
type ElementFactory struct {
	opts []PacketDumperOption
}

// NewElementFactory returns a new ElementFactory.
func NewElementFactory(opts ...PacketDumperOption) (*ElementFactory, error) {
	return &ElementFactory{
		opts: opts,
	}, nil
}

// NewElement returns a new Element.
func (f *ElementFactory) NewElement(_ string) (dataplane.Element, error) {
	dumper, err := NewPacketDumper(f.opts...)
	if err != nil {
		return nil, err
	}

	return &Element{PacketDumper: dumper}, nil
}

// Element dumps every packet on its inbound, outbound and ACK ports.
type Element struct {
	dataplane.NoOp
	*PacketDumper
}

// BindAckWriter dumps every acknowledgment written by later elements.
func (e *Element) BindAckWriter(writer dataplane.Writer) dataplane.Writer {
	return e.wrapWriter(Ack, writer)
}

// BindInbound dumps every received packet pushed through the pipeline.
func (e *Element) BindInbound(_ *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	return e.wrapWriter(Inbound, writer)
}

// BindInboundReader dumps every received packet pulled through the pipeline.
func (e *Element) BindInboundReader(_ *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	return e.wrapReader(Inbound, reader)
}

// BindOutbound dumps every packet pushed towards the peer.
func (e *Element) BindOutbound(_ *dataplane.FlowInfo, writer dataplane.Writer) dataplane.Writer {
	return e.wrapWriter(Outbound, writer)
}

// BindOutboundReader dumps every packet pulled towards the peer.
func (e *Element) BindOutboundReader(_ *dataplane.FlowInfo, reader dataplane.Reader) dataplane.Reader {
	return e.wrapReader(Outbound, reader)
}

// Close closes the element.
func (e *Element) Close() error {
	return e.PacketDumper.Close()
}

func (e *Element) wrapWriter(dir Direction, writer dataplane.Writer) dataplane.Writer {
	return dataplane.WriterFunc(func(pkt *packet.Packet, attributes dataplane.Attributes) error {
		e.logPacket(dir, pkt, attributes)

		return writer.Write(pkt, attributes)
	})
}

func (e *Element) wrapReader(dir Direction, reader dataplane.Reader) dataplane.Reader {
	return dataplane.ReaderFunc(func(a dataplane.Attributes) (*packet.Packet, dataplane.Attributes, error) {
		pkt, attr, err := reader.Read(a)
		if err != nil || pkt == nil {
			return pkt, attr, err
		}
		e.logPacket(dir, pkt, attr)

		return pkt, attr, nil
	})
}

// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dataplane

// NoOp is an Element that does not modify any packets. It can embedded in other elements, so it's
// possible to implement only a subset of the methods.
type NoOp struct{}

// BindAckWriter returns the writer unchanged.
func (i *NoOp) BindAckWriter(writer Writer) Writer {
	return writer
}

// BindInbound returns the writer unchanged.
func (i *NoOp) BindInbound(_ *FlowInfo, writer Writer) Writer {
	return writer
}

// BindInboundReader returns the reader unchanged.
func (i *NoOp) BindInboundReader(_ *FlowInfo, reader Reader) Reader {
	return reader
}

// BindOutbound returns the writer unchanged.
func (i *NoOp) BindOutbound(_ *FlowInfo, writer Writer) Writer {
	return writer
}

// BindOutboundReader returns the reader unchanged.
func (i *NoOp) BindOutboundReader(_ *FlowInfo, reader Reader) Reader {
	return reader
}

// UnbindFlow is called when the flow is removed. It can be used to clean up any data related to that flow.
func (i *NoOp) UnbindFlow(_ *FlowInfo) {}

// Close closes the Element, cleaning up any data if necessary.
func (i *NoOp) Close() error {
	return nil
}

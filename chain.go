// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dataplane

import "fmt"

// Chain is an element that runs all child elements in order. Packets on the
// inbound and outbound ports traverse the children in the order they were
// given. Acknowledgments emitted by a child pass through the ACK writers of
// the children listed before it.
type Chain struct {
	elements []Element
}

// NewChain returns a new Chain element.
func NewChain(elements []Element) *Chain {
	return &Chain{elements: elements}
}

// NewChainFromFactories returns a new Chain element.
func NewChainFromFactories(factories []Factory, flowID string) (*Chain, error) {
	elements := make([]Element, len(factories))

	for i, f := range factories {
		elem, err := f.NewElement(flowID)
		if err != nil {
			return nil, fmt.Errorf("creating element for flowID: %s: %w", flowID, err)
		}

		elements[i] = elem
	}

	return NewChain(elements), nil
}

// BindAckWriter lets you observe or emit synthesized acknowledgments.
func (i *Chain) BindAckWriter(writer Writer) Writer {
	for _, elem := range i.elements {
		writer = elem.BindAckWriter(writer)
	}

	return writer
}

// BindInbound lets you modify any received packet pushed through the pipeline.
func (i *Chain) BindInbound(info *FlowInfo, writer Writer) Writer {
	for j := len(i.elements) - 1; j >= 0; j-- {
		writer = i.elements[j].BindInbound(info, writer)
	}

	return writer
}

// BindInboundReader lets you modify any received packet pulled through the pipeline.
func (i *Chain) BindInboundReader(info *FlowInfo, reader Reader) Reader {
	for _, elem := range i.elements {
		reader = elem.BindInboundReader(info, reader)
	}

	return reader
}

// BindOutbound lets you modify any packet about to be sent, push side.
func (i *Chain) BindOutbound(info *FlowInfo, writer Writer) Writer {
	for j := len(i.elements) - 1; j >= 0; j-- {
		writer = i.elements[j].BindOutbound(info, writer)
	}

	return writer
}

// BindOutboundReader lets you modify any packet about to be sent, pull side.
func (i *Chain) BindOutboundReader(info *FlowInfo, reader Reader) Reader {
	for _, elem := range i.elements {
		reader = elem.BindOutboundReader(info, reader)
	}

	return reader
}

// UnbindFlow is called when the flow is removed. It can be used to clean up any data related to that flow.
func (i *Chain) UnbindFlow(info *FlowInfo) {
	for _, elem := range i.elements {
		elem.UnbindFlow(info)
	}
}

// Close closes the Element, cleaning up any data if necessary.
func (i *Chain) Close() error {
	var errs []error
	for _, elem := range i.elements {
		errs = append(errs, elem.Close())
	}

	return flattenErrs(errs)
}

// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dataplane

// Factory provides an interface for constructing elements. Elements keep
// per-flow state, so a Factory builds one per flow.
type Factory interface {
	NewElement(flowID string) (Element, error)
}

// FactoryFunc defines a simpler interface to use when creating a Factory,
// similar to http.HandlerFunc.
type FactoryFunc func(flowID string) (Element, error)

// NewElement implements Factory.
func (f FactoryFunc) NewElement(flowID string) (Element, error) {
	return f(flowID)
}

// SharedFactory always returns the same, already initialized Element and
// expects it to be able to handle several flows.
type SharedFactory struct {
	element Element
}

// NewSharedFactory creates a new instance of SharedFactory.
func NewSharedFactory(element Element) *SharedFactory {
	return &SharedFactory{
		element: element,
	}
}

// NewElement always returns the same element and ignores the flowID argument.
func (s *SharedFactory) NewElement(_ string) (Element, error) {
	return s.element, nil
}

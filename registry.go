// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dataplane

// Registry is a collector for elements.
type Registry struct {
	factories []Factory
}

// Add adds a new Factory to the registry.
func (r *Registry) Add(f Factory) {
	r.factories = append(r.factories, f)
}

// Build constructs a single Element for a flow from the registered factories.
// The extra elements are placed in the chain before the ones built by the
// registry.
func (r *Registry) Build(flowID string, extra ...Element) (Element, error) {
	if len(r.factories) == 0 && len(extra) == 0 {
		return &NoOp{}, nil
	}

	elements := []Element{}
	elements = append(elements, extra...)

	for _, f := range r.factories {
		elem, err := f.NewElement(flowID)
		if err != nil {
			_ = NewChain(elements[len(extra):]).Close()

			return nil, err
		}

		elements = append(elements, elem)
	}

	return NewChain(elements), nil
}

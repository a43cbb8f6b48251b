// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package mock

import "github.com/pion/dataplane"

// Factory is a mock Factory for testing.
type Factory struct {
	NewElementFn func(flowID string) (dataplane.Element, error)
}

// NewElement implements dataplane.Factory.
func (f *Factory) NewElement(flowID string) (dataplane.Element, error) {
	return f.NewElementFn(flowID)
}

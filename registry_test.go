// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dataplane

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockElement struct {
	NoOp
	flows  map[string]struct{}
	closed bool
}

func newMockElement() *mockElement {
	return &mockElement{flows: map[string]struct{}{}}
}

func (m *mockElement) BindInbound(info *FlowInfo, writer Writer) Writer {
	m.flows[info.ID] = struct{}{}

	return writer
}

func (m *mockElement) Close() error {
	m.closed = true

	return nil
}

func TestRegistry_Empty(t *testing.T) {
	r := Registry{}
	elem, err := r.Build("a")
	require.NoError(t, err)
	assert.IsType(t, &NoOp{}, elem)
}

func TestRegistry_Shared_Build(t *testing.T) {
	r := Registry{}
	m := newMockElement()

	r.Add(NewSharedFactory(m))

	e1, err := r.Build("a")
	require.NoError(t, err)

	e2, err := r.Build("b")
	require.NoError(t, err)

	e1.BindInbound(&FlowInfo{ID: "a"}, nil)
	e2.BindInbound(&FlowInfo{ID: "b"}, nil)

	assert.Contains(t, m.flows, "a", "expected flow 'a'")
	assert.Contains(t, m.flows, "b", "expected flow 'b'")
}

func TestRegistry_FactoryFunc_Build(t *testing.T) {
	r := Registry{}

	elementsByFlow := map[string]*mockElement{}

	r.Add(FactoryFunc(func(flowID string) (Element, error) {
		m := newMockElement()
		elementsByFlow[flowID] = m

		return m, nil
	}))

	_, err := r.Build("a")
	require.NoError(t, err)

	_, err = r.Build("b")
	require.NoError(t, err)

	assert.Contains(t, elementsByFlow, "a", "expected flow 'a'")
	assert.Contains(t, elementsByFlow, "b", "expected flow 'b'")
	assert.NotSame(t, elementsByFlow["a"], elementsByFlow["b"],
		"expected two separate element instances")
}

func TestRegistry_BuildFailureClosesBuilt(t *testing.T) {
	r := Registry{}
	built := newMockElement()
	errFactory := errors.New("factory failed")

	r.Add(NewSharedFactory(built))
	r.Add(FactoryFunc(func(string) (Element, error) {
		return nil, errFactory
	}))

	_, err := r.Build("a")
	assert.ErrorIs(t, err, errFactory)
	assert.True(t, built.closed)
}

func TestNewChainFromFactories_Error(t *testing.T) {
	errFactory := errors.New("factory failed")
	_, err := NewChainFromFactories([]Factory{
		FactoryFunc(func(string) (Element, error) { return nil, errFactory }),
	}, "flow")
	assert.ErrorIs(t, err, errFactory)
	assert.Contains(t, err.Error(), "flow")
}

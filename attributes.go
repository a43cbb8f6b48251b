// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dataplane

import (
	"errors"

	"github.com/pion/dataplane/pkg/packet"
)

type segmentKeyType int

const segmentKey segmentKeyType = iota

var errInvalidSegmentType = errors.New("found invalid segment type in attributes map")

// Attributes are a generic key/value store used by elements. They travel
// alongside a packet from one element to the next.
type Attributes map[interface{}]interface{}

// Get returns the attribute associated with key.
func (a Attributes) Get(key interface{}) interface{} {
	return a[key]
}

// Set sets the attribute associated with key to the given value.
func (a Attributes) Set(key interface{}, val interface{}) {
	a[key] = val
}

// GetSegment gets the parsed segment view if present. If it is not present,
// it will be parsed from the raw byte slice and stored in the attributes.
// A nil Attributes parses without caching.
func (a Attributes) GetSegment(raw []byte) (packet.Segment, error) {
	if val, ok := a[segmentKey]; ok {
		if seg, ok := val.(packet.Segment); ok {
			return seg, nil
		}

		return packet.Segment{}, errInvalidSegmentType
	}
	seg, err := packet.ParseSegment(raw)
	if err != nil {
		return packet.Segment{}, err
	}
	if a != nil {
		a[segmentKey] = seg
	}

	return seg, nil
}

// SetSegment replaces the cached segment view, typically after the packet
// bytes were copied by MakeWritable.
func (a Attributes) SetSegment(seg packet.Segment) {
	if a != nil {
		a[segmentKey] = seg
	}
}

// ClearSegment drops the cached segment view.
func (a Attributes) ClearSegment() {
	delete(a, segmentKey)
}

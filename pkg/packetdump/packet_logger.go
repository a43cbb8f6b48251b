// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

import (
	"github.com/pion/dataplane"
)

// PacketLogger logs packets seen on the ports of an element. data is a copy
// the logger may keep.
type PacketLogger interface {
	LogPacket(dir Direction, data []byte, attributes dataplane.Attributes)
}

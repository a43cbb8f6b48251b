// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

import (
	"fmt"
	"strings"

	"github.com/pion/dataplane/pkg/packet"
)

// FormatCallback can be used to apply custom formatting to each dumped
// packet. If new lines should be added after each packet, they must be included
// in the returned format.
type FormatCallback func(dump *Dump) string

// BinaryFormatCallback can be used to apply custom formatting or marshaling to each dumped packet.
type BinaryFormatCallback func(dump *Dump) ([]byte, error)

// DefaultFormatter prints one line per segment in a tcpdump-like layout.
func DefaultFormatter(dump *Dump) string {
	if !dump.Valid {
		return fmt.Sprintf("%s malformed len=%d\n", dump.Direction, len(dump.Data))
	}
	seg := dump.Segment

	return fmt.Sprintf("%s %s:%d > %s:%d [%s] seq=%d ack=%d len=%d\n",
		dump.Direction,
		seg.Src(), seg.SrcPort(),
		seg.Dst(), seg.DstPort(),
		flagString(seg.Flags()),
		seg.Seq(), seg.Ack(), seg.PayloadLen(),
	)
}

// BinaryFormatter writes the raw packet bytes.
func BinaryFormatter(dump *Dump) ([]byte, error) {
	return dump.Data, nil
}

func flagString(flags uint8) string {
	var sb strings.Builder
	for _, f := range []struct {
		flag uint8
		name byte
	}{
		{packet.FlagSyn, 'S'},
		{packet.FlagFin, 'F'},
		{packet.FlagRst, 'R'},
		{packet.FlagPsh, 'P'},
		{packet.FlagUrg, 'U'},
		{packet.FlagAck, '.'},
	} {
		if flags&f.flag != 0 {
			sb.WriteByte(f.name)
		}
	}
	if sb.Len() == 0 {
		return "none"
	}

	return sb.String()
}

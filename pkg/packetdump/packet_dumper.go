// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

import (
	"errors"
	"io"
	"maps"
	"os"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/logging"
)

// ErrBothBinaryAndTextFormat is returned when both binary and text format callbacks are set.
var ErrBothBinaryAndTextFormat = errors.New("both binary and text format callbacks are set")

// PacketDumper dumps packets to a PacketLogger, by default one writing to an
// io.Writer from a background goroutine.
type PacketDumper struct {
	log logging.LeveledLogger

	stream       io.Writer
	format       FormatCallback
	formatBinary BinaryFormatCallback
	filter       FilterCallback

	packetLogger PacketLogger
	closer       io.Closer
}

// NewPacketDumper creates a new PacketDumper.
func NewPacketDumper(opts ...PacketDumperOption) (*PacketDumper, error) {
	dumper := &PacketDumper{
		log:    logging.NewDefaultLoggerFactory().NewLogger("packet_dumper"),
		stream: os.Stdout,
		filter: func(*Dump) bool {
			return true
		},
	}

	for _, opt := range opts {
		if err := opt(dumper); err != nil {
			return nil, err
		}
	}

	if dumper.format != nil && dumper.formatBinary != nil {
		return nil, ErrBothBinaryAndTextFormat
	}
	if dumper.format == nil && dumper.formatBinary == nil {
		dumper.format = DefaultFormatter
	}

	if dumper.packetLogger == nil {
		logger := &defaultPacketLogger{
			log:          dumper.log,
			close:        make(chan struct{}),
			dumps:        make(chan *Dump),
			stream:       dumper.stream,
			format:       dumper.format,
			formatBinary: dumper.formatBinary,
			filter:       dumper.filter,
		}
		logger.run()
		dumper.packetLogger = logger
		dumper.closer = logger
	}

	return dumper, nil
}

func (d *PacketDumper) logPacket(dir Direction, pkt *packet.Packet, attributes dataplane.Attributes) {
	data := make([]byte, pkt.Len())
	copy(data, pkt.Bytes())
	d.packetLogger.LogPacket(dir, data, maps.Clone(attributes))
}

// Close closes the PacketDumper.
func (d *PacketDumper) Close() error {
	if d.closer == nil {
		return nil
	}

	return d.closer.Close()
}

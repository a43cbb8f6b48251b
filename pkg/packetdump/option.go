// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

import (
	"io"

	"github.com/pion/logging"
)

// PacketDumperOption can be used to configure a PacketDumper.
type PacketDumperOption func(d *PacketDumper) error

// Log sets a logger for the dumper.
func Log(log logging.LeveledLogger) PacketDumperOption {
	return func(d *PacketDumper) error {
		d.log = log

		return nil
	}
}

// Writer sets the io.Writer on which packets will be dumped.
func Writer(w io.Writer) PacketDumperOption {
	return func(d *PacketDumper) error {
		d.stream = w

		return nil
	}
}

// Formatter sets the text format.
func Formatter(f FormatCallback) PacketDumperOption {
	return func(d *PacketDumper) error {
		d.format = f

		return nil
	}
}

// BinaryFormat sets the binary format.
func BinaryFormat(f BinaryFormatCallback) PacketDumperOption {
	return func(d *PacketDumper) error {
		d.formatBinary = f

		return nil
	}
}

// Filter sets the packet filter.
func Filter(callback FilterCallback) PacketDumperOption {
	return func(d *PacketDumper) error {
		d.filter = callback

		return nil
	}
}

// PacketLog replaces the background writer by a custom PacketLogger.
// Writer, Formatter, BinaryFormat and Filter are then ignored.
func PacketLog(logger PacketLogger) PacketDumperOption {
	return func(d *PacketDumper) error {
		d.packetLogger = logger

		return nil
	}
}

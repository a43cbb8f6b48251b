// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package packetdump

import (
	"fmt"
	"io"
	"sync"

	"github.com/pion/dataplane"
	"github.com/pion/logging"
)

type defaultPacketLogger struct {
	log logging.LeveledLogger

	wg    sync.WaitGroup
	close chan struct{}
	dumps chan *Dump

	stream       io.Writer
	format       FormatCallback
	formatBinary BinaryFormatCallback
	filter       FilterCallback
}

func (d *defaultPacketLogger) run() {
	d.wg.Add(1)
	go d.loop()
}

func (d *defaultPacketLogger) LogPacket(dir Direction, data []byte, attributes dataplane.Attributes) {
	select {
	case d.dumps <- newDump(dir, data, attributes):
	case <-d.close:
	}
}

func (d *defaultPacketLogger) writeDump(dump *Dump) error {
	if !d.filter(dump) {
		return nil
	}

	if d.formatBinary != nil {
		dumped, err := d.formatBinary(dump)
		if err != nil {
			return fmt.Errorf("format binary: %w", err)
		}
		if _, err = d.stream.Write(dumped); err != nil {
			return fmt.Errorf("stream write: %w", err)
		}
	}

	if d.format != nil {
		if _, err := fmt.Fprint(d.stream, d.format(dump)); err != nil {
			return fmt.Errorf("stream Fprint: %w", err)
		}
	}

	return nil
}

// Close stops the background writer once the packet being written is done.
func (d *defaultPacketLogger) Close() error {
	defer d.wg.Wait()

	if !d.isClosed() {
		close(d.close)
	}

	return nil
}

func (d *defaultPacketLogger) isClosed() bool {
	select {
	case <-d.close:
		return true
	default:
		return false
	}
}

func (d *defaultPacketLogger) loop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.close:
			return
		case dump := <-d.dumps:
			if err := d.writeDump(dump); err != nil {
				d.log.Errorf("could not dump %s packet: %v", dump.Direction, err)
			}
		}
	}
}

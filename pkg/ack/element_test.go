// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ack

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/pion/dataplane"
	"github.com/pion/dataplane/internal/test"
	"github.com/pion/dataplane/pkg/packet"
	"github.com/pion/dataplane/pkg/tcpbuffer"
	"github.com/pion/logging"
	"github.com/pion/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct {
	jumps map[uint32]uint32
	lost  bool
}

func (b *fakeBuffer) NextMissingSeq(candidate uint32) (uint32, bool) {
	if b.lost {
		return 0, false
	}
	if next, ok := b.jumps[candidate]; ok {
		return next, true
	}

	return candidate, true
}

type harness struct {
	elem  *Element
	timer *test.MockTimer
	flow  test.Flow

	in, out, acks *test.CaptureWriter
	inbound       dataplane.Writer
	outbound      dataplane.Writer
}

func newHarness(t *testing.T, buf ReassemblyBuffer, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		timer: &test.MockTimer{},
		flow:  test.DefaultFlow(),
		in:    &test.CaptureWriter{},
		out:   &test.CaptureWriter{},
		acks:  &test.CaptureWriter{},
	}
	opts = append([]Option{WithTimerFactory(func(fire func()) Timer {
		return h.timer.Bind(fire)
	})}, opts...)

	elem, err := New(buf, opts...)
	require.NoError(t, err)
	h.elem = elem

	info := &dataplane.FlowInfo{ID: "flow"}
	elem.BindAckWriter(h.acks)
	h.inbound = elem.BindInbound(info, h.in)
	h.outbound = elem.BindOutbound(info, h.out)
	t.Cleanup(func() { assert.NoError(t, elem.Close()) })

	return h
}

func (h *harness) push(t *testing.T, pkt *packet.Packet) {
	t.Helper()
	require.NoError(t, h.inbound.Write(pkt, dataplane.Attributes{}))
}

func (h *harness) send(t *testing.T, pkt *packet.Packet) {
	t.Helper()
	require.NoError(t, h.outbound.Write(pkt, dataplane.Attributes{}))
}

// synchronize delivers the inbound SYN-ACK seq=5000 ack=1000.
func (h *harness) synchronize(t *testing.T) {
	t.Helper()
	h.push(t, h.flow.Inbound(5000, 1000, packet.FlagSyn|packet.FlagAck, 0))
}

func TestNew(t *testing.T) {
	t.Run("requires a reassembly buffer", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrNoReassemblyBuffer)
	})

	t.Run("rejects a negative delay", func(t *testing.T) {
		_, err := New(&fakeBuffer{}, AckDelay(-time.Millisecond))
		assert.ErrorIs(t, err, ErrInvalidAckDelay)

		_, err = New(&fakeBuffer{}, AckDelayMillis(-1))
		assert.ErrorIs(t, err, ErrInvalidAckDelay)
	})

	t.Run("defaults", func(t *testing.T) {
		elem, err := New(&fakeBuffer{})
		require.NoError(t, err)
		defer func() { assert.NoError(t, elem.Close()) }()

		assert.Equal(t, defaultAckDelay, elem.delay)
		assert.Equal(t, FlowState{}, elem.State())
	})
}

func TestElement_HandshakeAndDelayedAck(t *testing.T) {
	t.Run("inbound SYN-ACK synchronizes", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.synchronize(t)

		state := h.elem.State()
		assert.True(t, state.Synchronized)
		assert.Equal(t, uint32(1000), state.NextSendSeq)
		assert.Equal(t, uint32(5001), state.NextRecvAck)
		assert.False(t, state.AckOwed)
		assert.False(t, h.timer.Scheduled())
		assert.Equal(t, 1, h.in.Len())

		assert.True(t, state.TemplateCaptured)
		assert.Equal(t, h.flow.Remote, state.Template.Src)
		assert.Equal(t, h.flow.Local, state.Template.Dst)
		assert.Equal(t, h.flow.RemotePort, state.Template.SrcPort)
		assert.Equal(t, h.flow.LocalPort, state.Template.DstPort)
		assert.Equal(t, h.flow.TOS, state.Template.TOS)
	})

	t.Run("in-order data owes an ack", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.synchronize(t)
		h.push(t, h.flow.Data(5001, 100))

		state := h.elem.State()
		assert.Equal(t, uint32(5101), state.NextRecvAck)
		assert.True(t, state.AckOwed)
		assert.True(t, state.TimerArmed)
		assert.True(t, h.timer.Scheduled())
		assert.Equal(t, []time.Duration{defaultAckDelay}, h.timer.Delays())
		assert.Equal(t, 2, h.in.Len())
	})

	t.Run("timer fire emits one ack", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.synchronize(t)
		h.push(t, h.flow.Data(5001, 100))
		require.True(t, h.timer.Fire())

		segs := h.acks.Segments()
		require.Len(t, segs, 1)
		assert.Equal(t, uint32(5101), segs[0].Ack())
		assert.Equal(t, uint32(1000), segs[0].Seq())

		state := h.elem.State()
		assert.False(t, state.AckOwed)
		assert.False(t, state.TimerArmed)
		assert.Equal(t, uint64(1), h.elem.Stats().AcksSent)
	})

	t.Run("outbound data carries the ack", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.synchronize(t)
		h.push(t, h.flow.Data(5001, 100))
		h.send(t, h.flow.Outbound(1000, 0, packet.FlagAck|packet.FlagPsh, 50))

		segs := h.out.Segments()
		require.Len(t, segs, 1)
		assert.Equal(t, uint32(5101), segs[0].Ack())

		state := h.elem.State()
		assert.False(t, state.AckOwed)
		assert.Equal(t, uint32(1050), state.NextSendSeq)

		require.True(t, h.timer.Fire())
		assert.Equal(t, 0, h.acks.Len())
		assert.Equal(t, uint64(1), h.elem.Stats().Piggybacked)
	})
}

func TestElement_Unsynchronized(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})

	data := h.flow.Data(7000, 10)
	want := append([]byte(nil), data.Bytes()...)
	h.push(t, data)
	h.push(t, h.flow.Inbound(7010, 0, packet.FlagAck|packet.FlagFin, 0))
	h.push(t, packet.New([]byte{0x45, 0x00}))

	pkts := h.in.Packets()
	require.Len(t, pkts, 3)
	assert.Equal(t, want, pkts[0].Bytes())

	h.send(t, h.flow.Outbound(1, 0, packet.FlagAck, 20))
	assert.Equal(t, 0, h.out.Len())

	assert.False(t, h.timer.Fire())
	assert.Equal(t, 0, h.acks.Len())

	state := h.elem.State()
	assert.False(t, state.Synchronized)
	assert.False(t, state.AckOwed)
	assert.False(t, state.TemplateCaptured)
	assert.Equal(t, uint64(1), h.elem.Stats().Malformed)
}

func TestElement_OutboundSynchronization(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})

	h.send(t, h.flow.Outbound(1000, 5000, packet.FlagSyn|packet.FlagAck, 0))
	require.Equal(t, 1, h.out.Len())

	state := h.elem.State()
	assert.True(t, state.Synchronized)
	assert.Equal(t, uint32(1001), state.NextSendSeq)
	assert.Equal(t, uint32(5000), state.NextRecvAck)
	assert.False(t, state.TemplateCaptured)

	h.push(t, h.flow.Data(5000, 20))
	state = h.elem.State()
	assert.True(t, state.TemplateCaptured)
	assert.Equal(t, uint32(5020), state.NextRecvAck)

	require.True(t, h.timer.Fire())
	segs := h.acks.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, uint32(1001), segs[0].Seq())
	assert.Equal(t, uint32(5020), segs[0].Ack())
}

func TestElement_SynAckFlags(t *testing.T) {
	t.Run("FIN does not disqualify a SYN-ACK", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.push(t, h.flow.Inbound(5000, 1000, packet.FlagSyn|packet.FlagAck|packet.FlagFin, 0))
		assert.True(t, h.elem.State().Synchronized)
	})

	t.Run("SYN alone does not synchronize", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.push(t, h.flow.Inbound(5000, 0, packet.FlagSyn, 0))
		h.send(t, h.flow.Outbound(1000, 0, packet.FlagSyn, 0))
		assert.False(t, h.elem.State().Synchronized)
		assert.Equal(t, 0, h.out.Len())
	})

	t.Run("ACK alone does not synchronize outbound", func(t *testing.T) {
		h := newHarness(t, &fakeBuffer{})
		h.send(t, h.flow.Outbound(1000, 5000, packet.FlagAck|packet.FlagPsh, 10))
		assert.False(t, h.elem.State().Synchronized)
		assert.Equal(t, 0, h.out.Len())
	})
}

func TestElement_ControlSegments(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)

	for _, flags := range []uint8{packet.FlagFin | packet.FlagAck, packet.FlagRst, packet.FlagSyn} {
		h.push(t, h.flow.Inbound(5001, 1000, flags, 0))
	}

	state := h.elem.State()
	assert.Equal(t, uint32(5001), state.NextRecvAck)
	assert.False(t, state.AckOwed)
	assert.False(t, h.timer.Scheduled())
	assert.Equal(t, 4, h.in.Len())
}

func TestElement_InOrderAdvance(t *testing.T) {
	rng := randutil.NewMathRandomGenerator()
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)

	seq := uint32(5001)
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(1400)
		h.push(t, h.flow.Data(seq, n))
		seq += uint32(n)
		require.Equal(t, seq, h.elem.State().NextRecvAck, "segment %d", i)
	}
	assert.Equal(t, uint64(0), h.elem.Stats().OutOfOrder)
}

func TestElement_InOrderAcrossWrap(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.push(t, h.flow.Inbound(0xffffff00, 1000, packet.FlagSyn|packet.FlagAck, 0))

	h.push(t, h.flow.Data(0xffffff01, 0x100))
	assert.Equal(t, uint32(1), h.elem.State().NextRecvAck)
}

func TestElement_Duplicate(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)

	h.push(t, h.flow.Data(5001, 100))
	h.push(t, h.flow.Data(5001, 100))

	assert.Equal(t, uint32(5101), h.elem.State().NextRecvAck)
	assert.Equal(t, uint64(1), h.elem.Stats().OutOfOrder)
	assert.True(t, h.elem.State().AckOwed)
	assert.Len(t, h.timer.Delays(), 1)
}

func TestElement_GapFilledFromBuffer(t *testing.T) {
	buf := &fakeBuffer{jumps: map[uint32]uint32{5101: 5301}}
	h := newHarness(t, buf)
	h.synchronize(t)

	h.push(t, h.flow.Data(5101, 200))
	assert.Equal(t, uint32(5001), h.elem.State().NextRecvAck)
	assert.True(t, h.elem.State().AckOwed)

	h.push(t, h.flow.Data(5001, 100))
	assert.Equal(t, uint32(5301), h.elem.State().NextRecvAck)
}

func TestElement_BufferDesync(t *testing.T) {
	h := newHarness(t, &fakeBuffer{lost: true})
	h.synchronize(t)

	assert.Panics(t, func() {
		_ = h.inbound.Write(h.flow.Data(5001, 10), dataplane.Attributes{})
	})
}

func TestElement_SingleArming(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)

	seq := uint32(5001)
	for cycle := 0; cycle < 3; cycle++ {
		for i := 0; i < 4; i++ {
			h.push(t, h.flow.Data(seq, 10))
			seq += 10
		}
		assert.Len(t, h.timer.Delays(), cycle+1)
		require.True(t, h.timer.Fire())
		assert.False(t, h.timer.Fire())
		assert.Equal(t, cycle+1, h.acks.Len())
	}

	segs := h.acks.Segments()
	require.Len(t, segs, 3)
	assert.Equal(t, seq, segs[2].Ack())
}

func TestElement_AckWireFormat(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)
	h.push(t, h.flow.Data(5001, 100))
	require.True(t, h.timer.Fire())

	pkts := h.acks.Packets()
	require.Len(t, pkts, 1)
	b := pkts[0].Bytes()
	require.Len(t, b, 40)

	local := h.flow.Local.As4()
	remote := h.flow.Remote.As4()

	assert.Equal(t, byte(0x45), b[0])
	assert.Equal(t, h.flow.TOS, b[1])
	assert.Equal(t, uint16(40), binary.BigEndian.Uint16(b[2:4]))
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(b[4:6]))
	assert.Equal(t, uint16(0x4000), binary.BigEndian.Uint16(b[6:8]))
	assert.Equal(t, byte(255), b[8])
	assert.Equal(t, byte(6), b[9])
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(b[10:12]))
	assert.Equal(t, local[:], b[12:16])
	assert.Equal(t, remote[:], b[16:20])

	assert.Equal(t, h.flow.LocalPort, binary.BigEndian.Uint16(b[20:22]))
	assert.Equal(t, h.flow.RemotePort, binary.BigEndian.Uint16(b[22:24]))
	assert.Equal(t, uint32(1000), binary.BigEndian.Uint32(b[24:28]))
	assert.Equal(t, uint32(5101), binary.BigEndian.Uint32(b[28:32]))
	assert.Equal(t, byte(0x50), b[32])
	assert.Equal(t, packet.FlagAck, b[33])
	assert.Equal(t, uint16(32120), binary.BigEndian.Uint16(b[34:36]))
	assert.Equal(t, []byte{0, 0, 0, 0}, b[36:40])
}

func TestElement_PoolExhausted(t *testing.T) {
	pool := packet.NewPool(packet.SegmentSize, packet.WithLimit(1))
	h := newHarness(t, &fakeBuffer{}, WithPool(pool))
	h.synchronize(t)

	held, err := pool.Get(packet.SegmentSize)
	require.NoError(t, err)

	h.push(t, h.flow.Data(5001, 10))
	require.True(t, h.timer.Fire())
	assert.Equal(t, 0, h.acks.Len())
	assert.False(t, h.elem.State().AckOwed)
	assert.Equal(t, uint64(1), h.elem.Stats().AllocFailures)

	held.Release()
	h.push(t, h.flow.Data(5011, 10))
	require.True(t, h.timer.Fire())
	segs := h.acks.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, uint32(5021), segs[0].Ack())
}

func TestElement_StampSharedPacket(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)
	h.push(t, h.flow.Data(5001, 100))

	pkt := h.flow.Outbound(1000, 7, packet.FlagAck|packet.FlagPsh, 10)
	other := pkt.Clone()
	h.send(t, pkt)

	otherSeg, err := packet.ParseSegment(other.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(7), otherSeg.Ack())

	segs := h.out.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, uint32(5101), segs[0].Ack())
	assert.False(t, other.Shared())
}

func TestElement_UnboundAckPort(t *testing.T) {
	timer := &test.MockTimer{}
	elem, err := New(&fakeBuffer{}, WithTimerFactory(func(fire func()) Timer {
		return timer.Bind(fire)
	}))
	require.NoError(t, err)
	defer func() { assert.NoError(t, elem.Close()) }()

	flow := test.DefaultFlow()
	inbound := elem.BindInbound(&dataplane.FlowInfo{}, dataplane.Discard)
	require.NoError(t, inbound.Write(flow.Inbound(5000, 1000, packet.FlagSyn|packet.FlagAck, 0), nil))
	require.NoError(t, inbound.Write(flow.Data(5001, 10), nil))
	require.True(t, timer.Fire())

	stats := elem.Stats()
	assert.Equal(t, uint64(1), stats.AcksSent)
	assert.Equal(t, uint64(1), stats.AckPortDrops)
}

func TestElement_PullPorts(t *testing.T) {
	timer := &test.MockTimer{}
	elem, err := New(&fakeBuffer{}, WithTimerFactory(func(fire func()) Timer {
		return timer.Bind(fire)
	}))
	require.NoError(t, err)
	defer func() { assert.NoError(t, elem.Close()) }()

	flow := test.DefaultFlow()
	inSource := &test.QueueReader{}
	outSource := &test.QueueReader{}
	info := &dataplane.FlowInfo{}
	inbound := elem.BindInboundReader(info, inSource)
	outbound := elem.BindOutboundReader(info, outSource)

	outSource.Push(flow.Outbound(1, 0, packet.FlagAck, 0))
	pkt, _, err := outbound.Read(nil)
	require.NoError(t, err)
	assert.Nil(t, pkt)

	inSource.Push(flow.Inbound(5000, 1000, packet.FlagSyn|packet.FlagAck, 0), flow.Data(5001, 10))
	for i := 0; i < 2; i++ {
		pkt, _, err = inbound.Read(nil)
		require.NoError(t, err)
		require.NotNil(t, pkt)
	}
	pkt, _, err = inbound.Read(nil)
	require.NoError(t, err)
	assert.Nil(t, pkt)

	assert.True(t, elem.State().AckOwed)

	outSource.Push(flow.Outbound(1000, 0, packet.FlagAck|packet.FlagPsh, 5))
	pkt, attr, err := outbound.Read(nil)
	require.NoError(t, err)
	require.NotNil(t, pkt)
	seg, err := attr.GetSegment(pkt.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(5011), seg.Ack())
	assert.False(t, elem.State().AckOwed)
}

func TestElement_CloseStopsTimer(t *testing.T) {
	h := newHarness(t, &fakeBuffer{})
	h.synchronize(t)
	h.push(t, h.flow.Data(5001, 10))
	require.True(t, h.timer.Scheduled())
	require.True(t, h.elem.State().AckOwed)

	h.elem.UnbindFlow(&dataplane.FlowInfo{})
	assert.False(t, h.timer.Scheduled())
	assert.False(t, h.elem.State().TimerArmed)
	assert.False(t, h.elem.State().AckOwed)

	h.push(t, h.flow.Data(5011, 10))
	require.True(t, h.timer.Scheduled())
	require.NoError(t, h.elem.Close())
	assert.False(t, h.timer.Fire())
	assert.Equal(t, 0, h.acks.Len())
}

func TestElement_InboundRate(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	h := newHarness(t, &fakeBuffer{}, WithClock(clock), WithLoggerFactory(logging.NewDefaultLoggerFactory()))
	h.synchronize(t)

	seq := uint32(5001)
	for i := 0; i < 300; i++ {
		h.push(t, h.flow.Data(seq, 100))
		seq += 100
		now = now.Add(10 * time.Millisecond)
	}

	stats := h.elem.Stats()
	assert.InDelta(t, 10000, stats.InboundBytesPerSecond, 500)
	assert.InDelta(t, 100, stats.MeanSegmentSize, 0.001)
}

func TestElementFactory(t *testing.T) {
	timer := &test.MockTimer{}
	factory, err := NewElementFactory(
		WithTimerFactory(func(fire func()) Timer { return timer.Bind(fire) }),
		WithBufferOptions(tcpbuffer.Capacity(4)),
	)
	require.NoError(t, err)

	elem, err := factory.NewElement("flow")
	require.NoError(t, err)
	defer func() { assert.NoError(t, elem.Close()) }()

	flow := test.DefaultFlow()
	delivered := &test.CaptureWriter{}
	acks := &test.CaptureWriter{}
	info := &dataplane.FlowInfo{ID: "flow"}
	elem.BindAckWriter(acks)
	inbound := elem.BindInbound(info, delivered)

	require.NoError(t, inbound.Write(flow.Inbound(5000, 1000, packet.FlagSyn|packet.FlagAck, 0), nil))
	require.NoError(t, inbound.Write(flow.Data(5101, 100), nil))
	require.NoError(t, inbound.Write(flow.Data(5201, 100), nil))
	assert.Equal(t, 1, delivered.Len())

	require.True(t, timer.Fire())
	segs := acks.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, uint32(5001), segs[0].Ack())

	require.NoError(t, inbound.Write(flow.Data(5001, 100), nil))
	var starts []uint32
	for _, seg := range delivered.Segments() {
		starts = append(starts, seg.Start())
	}
	assert.Equal(t, []uint32{5000, 5001, 5101, 5201}, starts)

	require.True(t, timer.Fire())
	segs = acks.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, uint32(5301), segs[1].Ack())

	_, err = NewElementFactory(AckDelay(-1))
	require.NoError(t, err)
	_, err = (&ElementFactory{opts: []Option{AckDelay(-1)}}).NewElement("bad")
	assert.ErrorIs(t, err, ErrInvalidAckDelay)
}

func newFactoryChain(t *testing.T) (dataplane.Element, *test.MockTimer, *test.CaptureWriter) {
	t.Helper()

	timer := &test.MockTimer{}
	factory, err := NewElementFactory(
		WithTimerFactory(func(fire func()) Timer { return timer.Bind(fire) }),
	)
	require.NoError(t, err)

	elem, err := factory.NewElement("flow")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, elem.Close()) })

	acks := &test.CaptureWriter{}
	elem.BindAckWriter(acks)

	return elem, timer, acks
}

func TestElementFactory_OverlappingRetransmit(t *testing.T) {
	elem, timer, acks := newFactoryChain(t)
	flow := test.DefaultFlow()
	delivered := &test.CaptureWriter{}
	inbound := elem.BindInbound(&dataplane.FlowInfo{ID: "flow"}, delivered)

	require.NoError(t, inbound.Write(flow.Inbound(5000, 1000, packet.FlagSyn|packet.FlagAck, 0), nil))
	// Starts before the expected sequence and runs past it.
	require.NoError(t, inbound.Write(flow.Data(4951, 100), nil))
	assert.NotPanics(t, func() {
		require.NoError(t, inbound.Write(flow.Data(5001, 20), nil))
	})

	require.True(t, timer.Fire())
	segs := acks.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, uint32(5051), segs[0].Ack())

	var starts []uint32
	for _, seg := range delivered.Segments() {
		starts = append(starts, seg.Start())
	}
	assert.Equal(t, []uint32{5000, 5001, 5021}, starts)
	assert.Equal(t, uint32(30), delivered.Segments()[2].PayloadLen())

	require.NoError(t, inbound.Write(flow.Data(5051, 10), nil))
	require.True(t, timer.Fire())
	segs = acks.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, uint32(5061), segs[1].Ack())
}

func TestElementFactory_OutboundSynAckThenReorder(t *testing.T) {
	elem, timer, acks := newFactoryChain(t)
	flow := test.DefaultFlow()
	info := &dataplane.FlowInfo{ID: "flow"}
	delivered := &test.CaptureWriter{}
	inbound := elem.BindInbound(info, delivered)
	outbound := elem.BindOutbound(info, &test.CaptureWriter{})

	require.NoError(t, outbound.Write(flow.Outbound(1000, 5000, packet.FlagSyn|packet.FlagAck, 0), nil))
	require.NoError(t, inbound.Write(flow.Data(5100, 100), nil))
	assert.Equal(t, 0, delivered.Len())

	assert.NotPanics(t, func() {
		require.NoError(t, inbound.Write(flow.Data(5000, 50), nil))
	})
	require.True(t, timer.Fire())
	segs := acks.Segments()
	require.Len(t, segs, 1)
	assert.Equal(t, uint32(5050), segs[0].Ack())
	assert.Equal(t, 1, delivered.Len())
}

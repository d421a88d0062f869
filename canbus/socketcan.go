package canbus

import (
	"fmt"
	"time"

	sockcan "github.com/brutella/can"

	"udscan/metrics"
)

// canEFFFlag marks a SocketCAN identifier as 29-bit extended, per the
// raw frame layout brutella/can exposes directly from the kernel.
const canEFFFlag uint32 = 0x80000000

// SocketCANAdapter is a CAN adapter over a Linux SocketCAN interface
// (e.g. can0, vcan0), backed by brutella/can's raw socket binding. All
// frames are sent as 29-bit extended identifiers. No acceptance filter is
// installed: every received frame is delivered, with the extended-frame
// flag cleared from its identifier.
type SocketCANAdapter struct {
	bus    *sockcan.Bus
	rxChan chan Frame
}

// OpenSocketCAN binds to the named SocketCAN interface, which must already
// be up (e.g. via "ip link set can0 up").
func OpenSocketCAN(iface string) (*SocketCANAdapter, error) {
	bus, err := sockcan.NewBusForInterfaceWithName(iface)
	if err != nil {
		return nil, fmt.Errorf("canbus: open socketcan interface %s: %w", iface, err)
	}

	a := &SocketCANAdapter{
		bus:    bus,
		rxChan: make(chan Frame, 100),
	}
	bus.Subscribe(a)
	go func() {
		// ConnectAndPublish blocks until Disconnect is called. Its error
		// is discarded and rxChan is never closed, so once the bus stops
		// ReceiveWithTimeout keeps returning ErrTimeout.
		_ = bus.ConnectAndPublish()
	}()

	return a, nil
}

// Handle implements brutella/can's frame handler interface.
func (a *SocketCANAdapter) Handle(frame sockcan.Frame) {
	f := Frame{
		ID:  ID(frame.ID &^ canEFFFlag),
		DLC: frame.Length,
	}
	copy(f.Data[:], frame.Data[:])
	metrics.FramesReceived.Inc()
	select {
	case a.rxChan <- f:
	default:
		// Slow consumer; drop rather than block the bus's own
		// receive goroutine.
	}
}

// Split implements Socket.
func (a *SocketCANAdapter) Split() (Tx, Rx) {
	return socketCANTx{a}, socketCANRx{a}
}

// Close implements Socket.
func (a *SocketCANAdapter) Close() error {
	return a.bus.Disconnect()
}

type socketCANTx struct{ a *SocketCANAdapter }

func (t socketCANTx) Transmit(frame Frame) error {
	out := sockcan.Frame{
		ID:     uint32(frame.ID) | canEFFFlag,
		Length: frame.DLC,
		Data:   frame.Data,
	}
	if err := t.a.bus.Publish(out); err != nil {
		return fmt.Errorf("canbus: socketcan publish: %w", err)
	}
	metrics.FramesTransmitted.Inc()
	return nil
}

type socketCANRx struct{ a *SocketCANAdapter }

func (r socketCANRx) ReceiveWithTimeout(d time.Duration) (Frame, error) {
	select {
	case frame, ok := <-r.a.rxChan:
		if !ok {
			return Frame{}, ErrClosed
		}
		return frame, nil
	case <-time.After(d):
		return Frame{}, ErrTimeout
	}
}

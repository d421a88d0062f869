package canbus

import (
	"bufio"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"go.bug.st/serial"
)

// mockSerialPort is a minimal fake of go.bug.st/serial.Port, adapted from
// the style of the USB adapter's own test fakes: a read buffer fed by the
// test, a write buffer the test can inspect.
type mockSerialPort struct {
	mu       sync.Mutex
	readBuf  []byte
	readPos  int
	writeBuf []byte
	closed   bool
}

func (m *mockSerialPort) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, io.EOF
	}
	if m.readPos >= len(m.readBuf) {
		return 0, io.EOF
	}
	n := copy(p, m.readBuf[m.readPos:])
	m.readPos += n
	return n, nil
}

func (m *mockSerialPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeBuf = append(m.writeBuf, p...)
	return len(p), nil
}

func (m *mockSerialPort) written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.writeBuf...)
}

func (m *mockSerialPort) feed(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readBuf = append(m.readBuf, data...)
}

func (m *mockSerialPort) Close() error                                        { m.closed = true; return nil }
func (m *mockSerialPort) SetMode(*serial.Mode) error                          { return nil }
func (m *mockSerialPort) SetReadTimeout(time.Duration) error                  { return nil }
func (m *mockSerialPort) Drain() error                                        { return nil }
func (m *mockSerialPort) ResetInputBuffer() error                             { return nil }
func (m *mockSerialPort) ResetOutputBuffer() error                            { return nil }
func (m *mockSerialPort) SetDTR(bool) error                                   { return nil }
func (m *mockSerialPort) SetRTS(bool) error                                   { return nil }
func (m *mockSerialPort) GetModemStatusBits() (*serial.ModemStatusBits, error) { return nil, nil }
func (m *mockSerialPort) Break(time.Duration) error                           { return nil }

func newTestAdapter(port *mockSerialPort) *SerialAdapter {
	ctx, cancel := context.WithCancel(context.Background())
	return &SerialAdapter{
		port:       port,
		reader:     bufio.NewReader(port),
		ctx:        ctx,
		cancel:     cancel,
		pauseChan:  make(chan struct{}, 1),
		resumeChan: make(chan struct{}, 1),
		framesChan: make(chan Frame, 100),
		errorChan:  make(chan error, 1),
	}
}

func TestSerialFrame_EncodeDecodeRoundTrip(t *testing.T) {
	frame := Frame{ID: 0x123, DLC: 3, Data: [MaxDataLength]uint8{0x01, 0x02, 0x03}}
	encoded := encodeSerialFrame(frame)

	port := &mockSerialPort{}
	port.feed(encoded)
	a := newTestAdapter(port)

	got, err := a.readFrame()
	if err != nil {
		t.Fatalf("readFrame returned error: %v", err)
	}
	if got.ID != frame.ID || got.DLC != frame.DLC {
		t.Fatalf("frame mismatch: got %+v, want %+v", got, frame)
	}
	for i := 0; i < int(frame.DLC); i++ {
		if got.Data[i] != frame.Data[i] {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got.Data[i], frame.Data[i])
		}
	}
}

func TestSerialFrame_ByteStuffingRoundTrip(t *testing.T) {
	// ID and payload deliberately include startMarker, endMarker, and
	// escapeChar to exercise the stuffing/unstuffing paths.
	frame := Frame{ID: 0x7E7F1B, DLC: 3, Data: [MaxDataLength]uint8{startMarker, endMarker, escapeChar}}
	encoded := encodeSerialFrame(frame)

	port := &mockSerialPort{}
	port.feed(encoded)
	a := newTestAdapter(port)

	got, err := a.readFrame()
	if err != nil {
		t.Fatalf("readFrame returned error: %v", err)
	}
	if got.ID != frame.ID || got.DLC != frame.DLC {
		t.Fatalf("frame mismatch: got %+v, want %+v", got, frame)
	}
	for i := 0; i < int(frame.DLC); i++ {
		if got.Data[i] != frame.Data[i] {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got.Data[i], frame.Data[i])
		}
	}
}

func TestSerialFrame_ChecksumMismatchIsRejected(t *testing.T) {
	// Built directly from unstuffed bytes (none of which collide with the
	// marker/escape bytes) with a checksum that does not match the
	// payload, rather than corrupting an encoded frame, since the correct
	// checksum byte is not known to be unstuffed ahead of time.
	encoded := []byte{
		startMarker,
		0x00, 0x00, 0x01, 0x23, // id 0x123
		0x03,             // dlc
		0x01, 0x02, 0x03, // data
		0xFF, // wrong checksum
		endMarker,
	}

	port := &mockSerialPort{}
	port.feed(encoded)
	a := newTestAdapter(port)

	_, err := a.readFrame()
	if err == nil {
		t.Fatal("expected a checksum mismatch error")
	}
}

func TestSerialTx_Transmit_WritesEncodedFrame(t *testing.T) {
	port := &mockSerialPort{}
	a := newTestAdapter(port)
	// No readLoop goroutine runs in this test; this goroutine takes the
	// pause signal and answers with a resume, standing in for it.
	go func() {
		<-a.pauseChan
		a.resumeChan <- struct{}{}
	}()

	frame := Frame{ID: 0x456, DLC: 2, Data: [MaxDataLength]uint8{0xAA, 0xBB}}
	tx := serialTx{a}
	if err := tx.Transmit(frame); err != nil {
		t.Fatalf("Transmit returned error: %v", err)
	}

	want := encodeSerialFrame(frame)
	got := port.written()
	if len(got) != len(want) {
		t.Fatalf("written length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestSerialCRC8_DiffersOnCorruption(t *testing.T) {
	data := [MaxDataLength]uint8{0x01, 0x02, 0x03}
	a := serialCRC8(3, data)
	data[0] ^= 0xFF
	b := serialCRC8(3, data)
	if a == b {
		t.Errorf("expected CRC to change when data changes")
	}
}

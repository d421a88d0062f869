// Package canbus defines the CAN frame wire type and the adapter interfaces
// the diagnostic client uses to transmit and receive it. It deliberately
// knows nothing about ISO-TP or UDS; those live in isotp and client.
package canbus

import "fmt"

// MaxDataLength is the classical CAN payload limit this client targets.
// CAN-FD's longer frames are out of scope.
const MaxDataLength = 8

// ID is a CAN identifier. The client only ever uses 29-bit extended
// identifiers; every adapter in this package is configured to transmit
// and accept extended frames.
type ID uint32

// Frame is a single classical CAN frame: an identifier, a data length code
// (0-8), and up to 8 bytes of payload.
type Frame struct {
	ID   ID
	DLC  uint8
	Data [MaxDataLength]uint8
}

// NewFrame builds a Frame from an identifier and payload. Payloads longer
// than MaxDataLength are truncated to their first MaxDataLength bytes.
func NewFrame(id ID, payload []byte) Frame {
	f := Frame{ID: id}
	n := len(payload)
	if n > MaxDataLength {
		n = MaxDataLength
	}
	f.DLC = uint8(n)
	copy(f.Data[:], payload[:n])
	return f
}

// Payload returns the frame's data bytes, sliced to its DLC.
func (f Frame) Payload() []byte {
	return f.Data[:f.DLC]
}

func (f Frame) String() string {
	return fmt.Sprintf("ID:0x%03X DLC:%d Data:% X", uint32(f.ID), f.DLC, f.Data[:f.DLC])
}

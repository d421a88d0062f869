// Package service implements the public diagnostic routines offered to the
// request task: ECU reset variants, periodic real-time data read/stop, and
// the still-unimplemented log transfer.
package service

import (
	"udscan/client"
	"udscan/diag"
	"udscan/isotp"
	"udscan/transport"
)

// ECU Reset sub-functions. ISO 14229 defines 0x01..0x05; this client's
// target ECUs additionally expose 0x40..0x47 as a vendor-specific block of
// reset targets, named here only by position since no richer semantics
// were available to name them by.
const (
	ECUResetSubID1 byte = 0x40
	ECUResetSubID2 byte = 0x41
	ECUResetSubID3 byte = 0x42
	ECUResetSubID4 byte = 0x43
	ECUResetSubID5 byte = 0x44
	ECUResetSubID6 byte = 0x45
	ECUResetSubID7 byte = 0x46
	ECUResetSubID8 byte = 0x47
)

// periodicIdentifier is the DID byte ("0xB0") every periodic read/stop
// request in this client targets.
const periodicIdentifier byte = 0xB0

// Periodic read rates for ReadDataByPeriodicIdentifier (SID 0x2A).
const (
	RateSlow   byte = 0x01 // ~30s
	RateMedium byte = 0x02 // ~5s
	RateFast   byte = 0x03 // ~100ms
	rateStop   byte = 0x04
)

// ECUReset requests a reset of the given sub-id target. The outbound frame
// is a Single Frame with size=2: [0x02, 0x11, subID].
func ECUReset(c *client.Client, subID byte) error {
	_, err := c.SendCommandWithResponse(0x02, diag.ServiceECUReset, []byte{subID})
	return err
}

// ReadDataByPeriodicIdentifierStart begins a periodic real-time data
// stream at the given rate and consumes the multi-frame response via the
// receive state machine.
func ReadDataByPeriodicIdentifierStart(c *client.Client, rate byte) ([]byte, error) {
	return transport.ReceiveMultiFrame(c, 0x03, diag.ServiceReadDataByPeriodicIdentifier, []byte{rate, periodicIdentifier})
}

// ReadDataByPeriodicIdentifierStop halts a previously started periodic
// data stream. Unlike the start variants, the stop request's response is a
// Single Frame acknowledgement, not a multi-frame stream.
func ReadDataByPeriodicIdentifierStop(c *client.Client) error {
	_, err := c.SendCommandWithResponse(0x03, diag.ServiceReadDataByPeriodicIdentifier, []byte{rateStop, periodicIdentifier})
	return err
}

// TransferData (SID 0x36) is unimplemented: the source this client was
// modeled on never defines a wire format for it, so this surfaces
// NotImplemented rather than guessing one.
func TransferData(c *client.Client, data []byte) (isotp.UdsFrame, error) {
	return nil, diag.NewNotImplemented("TransferData")
}

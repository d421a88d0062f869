// Package transport implements the ISO-TP multi-frame transport state
// machine layered on top of client.Client: the Flow Control handshake and
// Consecutive Frame reassembly a service invokes when it expects a
// response longer than 7 bytes.
package transport

import (
	"udscan/client"
	"udscan/diag"
	"udscan/isotp"
)

// flowControlSeparationTime requests the ECU send Consecutive Frames as
// fast as possible; combined with blockSize 0 this disables intermediate
// Flow Control, trading sender throttling for a simpler receiver.
const (
	flowControlBlockSize      = 0x00
	flowControlSeparationTime = 0x7F
)

// ReceiveMultiFrame sends [pci, sid, args...] expecting a First Frame in
// response, then drives the Flow Control handshake and reassembles
// Consecutive Frames until the announced size is satisfied.
func ReceiveMultiFrame(c *client.Client, pci, sid byte, args []byte) ([]byte, error) {
	resp, err := c.SendCommandWithResponse(pci, sid, args)
	if err != nil {
		return nil, err
	}

	first, ok := resp.(isotp.FirstFrame)
	if !ok {
		return nil, &diag.Error{Kind: diag.WrongMessage, Want: "FirstFrame", Received: frameKind(resp)}
	}

	payload := append([]byte(nil), first.Payload...)
	remaining := int(first.Size) - len(first.Payload)
	prevSeq := uint8(0)

	if err := sendFlowControl(c); err != nil {
		return nil, err
	}

	for remaining > 0 {
		frame, err := c.Receive()
		if err != nil {
			return nil, &diag.Error{Kind: diag.InvalidResponseLength}
		}

		switch f := frame.(type) {
		case isotp.ConsecutiveFrame:
			want := (prevSeq + 1) % 16
			if f.SeqNum != want {
				return nil, &diag.Error{Kind: diag.InvalidResponseLength}
			}
			payload = append(payload, f.Payload...)
			remaining -= len(f.Payload)
			prevSeq = f.SeqNum

		case isotp.FirstFrame:
			payload = append([]byte(nil), f.Payload...)
			remaining = int(f.Size) - len(f.Payload)
			prevSeq = 0
			if err := sendFlowControl(c); err != nil {
				return nil, err
			}

		default:
			// ignore unrelated frame variants, per the receiver contract
		}
	}

	if remaining != 0 {
		return nil, &diag.Error{Kind: diag.InvalidResponseLength}
	}
	return payload, nil
}

func sendFlowControl(c *client.Client) error {
	fc := isotp.FlowControlFrame{
		Flag:           isotp.FlowStatusContinue,
		BlockSize:      flowControlBlockSize,
		SeparationTime: flowControlSeparationTime,
	}
	if err := c.SendFrame(fc); err != nil {
		return &diag.Error{Kind: diag.ChannelError, Inner: err}
	}
	return nil
}

func frameKind(f isotp.UdsFrame) string {
	switch f.(type) {
	case isotp.SingleFrame:
		return "SingleFrame"
	case isotp.FirstFrame:
		return "FirstFrame"
	case isotp.ConsecutiveFrame:
		return "ConsecutiveFrame"
	case isotp.FlowControlFrame:
		return "FlowControlFrame"
	case isotp.NegativeResponse:
		return "NegativeResponse"
	default:
		return "unknown"
	}
}

// SendMultiFrame is reserved for outbound multi-frame transmission
// (TransferData). The current service layer sends only Single Frames
// outbound, so this is unimplemented rather than guessed.
func SendMultiFrame(c *client.Client, data []byte) error {
	return diag.NewNotImplemented("TransferData")
}

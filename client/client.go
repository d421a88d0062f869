// Package client implements the UDS client core: it owns the outgoing CAN
// identifier and a reference to the shared response slot, and exposes the
// request-side operations the service layer builds diagnostic requests on
// top of.
package client

import (
	"udscan/canbus"
	"udscan/diag"
	"udscan/isotp"
	"udscan/logging"
	"udscan/respslot"
	"udscan/services"
)

func logger() *logging.Logger {
	l, _ := services.Get(services.ServiceLogger).(*logging.Logger)
	return l
}

// Client binds a transmit half, a 29-bit request identifier, and a shared
// response slot. One Client exists per physical request id; the receive
// task that feeds its slot runs independently.
type Client struct {
	tx   canbus.Tx
	id   canbus.ID
	slot *respslot.Slot
}

// New binds the transmit half, request id, and response slot.
func New(tx canbus.Tx, id canbus.ID, slot *respslot.Slot) *Client {
	return &Client{tx: tx, id: id, slot: slot}
}

// SendRaw wraps bytes into a CAN frame under the client's id and transmits
// it. Transport failures are reported as ChannelError.
func (c *Client) SendRaw(data []byte) error {
	frame := canbus.NewFrame(c.id, data)
	if l := logger(); l != nil {
		l.WithFrame(uint32(c.id), len(data)).Debug("uds client: sending raw frame")
	}
	if err := c.tx.Transmit(frame); err != nil {
		return diag.New(diag.ChannelError)
	}
	return nil
}

// SendCommand builds [pci, sid, args...] and transmits it.
func (c *Client) SendCommand(pci, sid byte, args []byte) error {
	data := make([]byte, 0, 2+len(args))
	data = append(data, pci, sid)
	data = append(data, args...)
	return c.SendRaw(data)
}

// SendFrame encodes frame per the ISO-TP wire layout and transmits it.
func (c *Client) SendFrame(frame isotp.UdsFrame) error {
	data, err := isotp.Encode(frame)
	if err != nil {
		return diag.NewFrameError(err)
	}
	return c.SendRaw(data)
}

// SendCommandWithResponse sends the command then waits for the slot to
// resolve, unwrapping a successful response into its UdsFrame.
func (c *Client) SendCommandWithResponse(pci, sid byte, args []byte) (isotp.UdsFrame, error) {
	if err := c.SendCommand(pci, sid, args); err != nil {
		return nil, err
	}
	return c.awaitResponse()
}

// SendFrameWithResponse is SendFrame followed by a wait on the slot.
func (c *Client) SendFrameWithResponse(frame isotp.UdsFrame) (isotp.UdsFrame, error) {
	if err := c.SendFrame(frame); err != nil {
		return nil, err
	}
	return c.awaitResponse()
}

// Receive is a pure delegate to the slot's wait, for callers already mid
// multi-frame exchange that just need the next frame.
func (c *Client) Receive() (isotp.UdsFrame, error) {
	return c.awaitResponse()
}

func (c *Client) awaitResponse() (isotp.UdsFrame, error) {
	r := c.slot.WaitForResponse()
	if !r.Ok() {
		return nil, r.Err
	}
	return r.Frame, nil
}

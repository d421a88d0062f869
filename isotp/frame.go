package isotp

import "fmt"

// FrameErrorKind enumerates the ways a byte sequence can fail to decode as
// an ISO-TP frame.
type FrameErrorKind uint8

const (
	InvalidFrameType FrameErrorKind = iota
	InvalidSize
	InvalidSid
	InvalidNrc
	InvalidCanLength
	Other
)

// FrameError reports why Decode or Encode rejected a frame.
type FrameError struct {
	Kind FrameErrorKind
}

func (e FrameError) Error() string {
	switch e.Kind {
	case InvalidFrameType:
		return "isotp: invalid frame type"
	case InvalidSize:
		return "isotp: frame size is incorrect"
	case InvalidSid:
		return "isotp: invalid service identifier"
	case InvalidNrc:
		return "isotp: invalid negative response code"
	case InvalidCanLength:
		return "isotp: invalid CAN payload length"
	default:
		return "isotp: unknown frame error"
	}
}

// UdsFrame is satisfied by every ISO-TP frame variant this package knows
// how to encode and decode.
type UdsFrame interface {
	PCIType() PciType
}

// SingleFrame carries a payload that fits in one CAN frame (<=7 bytes).
type SingleFrame struct {
	Size    uint8
	SID     byte
	DID     *uint16
	Payload []byte
}

func (SingleFrame) PCIType() PciType { return PciSingleFrame }

// FirstFrame opens a multi-frame transmission, announcing the total size
// of the payload that will follow across Consecutive Frames.
type FirstFrame struct {
	Size    uint16
	SID     byte
	DID     *uint16
	Payload []byte
}

func (FirstFrame) PCIType() PciType { return PciFirstFrame }

// ConsecutiveFrame carries one chunk of a multi-frame payload after a
// First Frame.
type ConsecutiveFrame struct {
	SeqNum  uint8
	Payload []byte
}

func (ConsecutiveFrame) PCIType() PciType { return PciConsecutiveFrame }

// FlowControlFrame paces a sender during a multi-frame transmission.
type FlowControlFrame struct {
	Flag           uint8
	BlockSize      uint8
	SeparationTime uint8
	Padding        []byte
}

func (FlowControlFrame) PCIType() PciType { return PciFlowControl }

// NegativeResponse is the special case of a Single Frame whose second
// byte is 0x7F: the ECU rejecting a request.
type NegativeResponse struct {
	Size uint8
	RSID byte
	NRC  byte
}

// PCIType reports PciSingleFrame: a negative response is wire-identical
// to a Single Frame until its second byte is inspected.
func (NegativeResponse) PCIType() PciType { return PciSingleFrame }

func (n NegativeResponse) String() string {
	return fmt.Sprintf("NegativeResp{rsid=0x%02X nrc=0x%02X}", n.RSID, n.NRC)
}

// IsNegativeResponse reports whether f is a NegativeResponse.
func IsNegativeResponse(f UdsFrame) bool {
	_, ok := f.(NegativeResponse)
	return ok
}

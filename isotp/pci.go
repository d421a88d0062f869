// Package isotp implements the ISO 15765-2 Protocol Control Information
// (PCI) frame codec: encoding and decoding of Single, First, Consecutive,
// Flow Control, and Negative Response frames.
package isotp

// PciType is the frame variant selected by the high nibble of a frame's
// first byte.
type PciType uint8

const (
	PciSingleFrame PciType = iota
	PciFirstFrame
	PciConsecutiveFrame
	PciFlowControl
)

func (t PciType) String() string {
	switch t {
	case PciSingleFrame:
		return "SingleFrame"
	case PciFirstFrame:
		return "FirstFrame"
	case PciConsecutiveFrame:
		return "ConsecutiveFrame"
	case PciFlowControl:
		return "FlowControl"
	default:
		return "Unknown"
	}
}

// PciByte packs a PciType and its associated nibble value into the single
// byte ISO-TP frames lead with. A Single Frame request only needs its
// length nibble and SID, so its PCI byte can be built this way instead of
// constructing a full UdsFrame.
type PciByte struct {
	Type  PciType
	Value uint8
}

// Byte encodes the PCI byte per ISO 15765-2.
func (p PciByte) Byte() byte {
	switch p.Type {
	case PciSingleFrame:
		return p.Value & 0x0F
	case PciFirstFrame:
		return 0x10 | (p.Value & 0x0F)
	case PciConsecutiveFrame:
		return 0x20 | (p.Value & 0x0F)
	case PciFlowControl:
		return 0x30 | (p.Value & 0x0F)
	default:
		return p.Value & 0x0F
	}
}

// Flow control flag values (byte 0's low nibble of a Flow Control frame).
const (
	FlowStatusContinue byte = 0x00
	FlowStatusWait     byte = 0x01
	FlowStatusOverflow byte = 0x02
)

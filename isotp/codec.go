package isotp

import "udscan/diag"

// NegativeResponseByte is the Single Frame SID value (byte 1) that marks
// the frame as a negative response rather than an ordinary payload.
const NegativeResponseByte byte = 0x7F

// Encode serializes a UdsFrame into its ISO-TP wire bytes. It never
// inspects CAN DLC; callers place the result into a canbus.Frame payload.
func Encode(f UdsFrame) ([]byte, error) {
	switch v := f.(type) {
	case SingleFrame:
		return encodeSingle(v)
	case FirstFrame:
		return encodeFirst(v)
	case ConsecutiveFrame:
		return encodeConsecutive(v)
	case FlowControlFrame:
		return encodeFlowControl(v), nil
	case NegativeResponse:
		return []byte{v.Size & 0x0F, NegativeResponseByte, v.RSID, v.NRC}, nil
	default:
		return nil, FrameError{Kind: InvalidFrameType}
	}
}

func encodeSingle(f SingleFrame) ([]byte, error) {
	if len(f.Payload) > 7 {
		return nil, FrameError{Kind: InvalidSize}
	}
	out := make([]byte, 0, 8)
	out = append(out, f.Size&0x0F, f.SID)
	if f.DID != nil {
		out = append(out, byte(*f.DID>>8), byte(*f.DID))
	}
	out = append(out, f.Payload...)
	return out, nil
}

func encodeFirst(f FirstFrame) ([]byte, error) {
	if len(f.Payload) > 6 {
		return nil, FrameError{Kind: InvalidSize}
	}
	out := make([]byte, 0, 8)
	out = append(out, 0x10|byte((f.Size>>8)&0x0F), byte(f.Size&0xFF), f.SID)
	if f.DID != nil {
		out = append(out, byte(*f.DID>>8), byte(*f.DID))
	}
	out = append(out, f.Payload...)
	return out, nil
}

func encodeConsecutive(f ConsecutiveFrame) ([]byte, error) {
	if len(f.Payload) > 7 {
		return nil, FrameError{Kind: InvalidSize}
	}
	out := make([]byte, 0, 8)
	out = append(out, 0x20|(f.SeqNum&0x0F))
	out = append(out, f.Payload...)
	return out, nil
}

func encodeFlowControl(f FlowControlFrame) []byte {
	out := []byte{0x30 | (f.Flag & 0x0F), f.BlockSize, f.SeparationTime}
	out = append(out, f.Padding...)
	return out
}

// Decode parses raw ISO-TP bytes (the CAN frame's payload, trimmed to its
// DLC) into a UdsFrame. DID presence for Single and First frames is
// inferred from the remaining byte count, per the known ambiguity
// documented in DESIGN.md: a payload that happens to start with two bytes
// that look like a plausible DID cannot be distinguished from an absent
// DID by this rule alone.
func Decode(data []byte) (UdsFrame, error) {
	if len(data) == 0 {
		return nil, FrameError{Kind: InvalidCanLength}
	}

	switch data[0] >> 4 {
	case 0x0:
		return decodeSingle(data)
	case 0x1:
		return decodeFirst(data)
	case 0x2:
		return decodeConsecutive(data)
	case 0x3:
		return decodeFlowControl(data)
	default:
		return nil, FrameError{Kind: InvalidFrameType}
	}
}

func decodeSingle(data []byte) (UdsFrame, error) {
	size := data[0] & 0x0F
	if len(data) < 2 {
		return nil, FrameError{Kind: InvalidSize}
	}
	sid := data[1]

	if sid == NegativeResponseByte {
		if len(data) < 4 {
			return nil, FrameError{Kind: InvalidSid}
		}
		rsid := data[2]
		if !diag.IsKnownSID(rsid) {
			return nil, FrameError{Kind: InvalidSid}
		}
		nrc := data[3]
		if !diag.IsKnownNRC(nrc) {
			return nil, FrameError{Kind: InvalidNrc}
		}
		return NegativeResponse{Size: size, RSID: rsid, NRC: nrc}, nil
	}

	var did *uint16
	payloadStart := 2
	if len(data) >= 4 {
		v := uint16(data[2])<<8 | uint16(data[3])
		did = &v
		payloadStart = 4
	}
	if payloadStart > len(data) {
		payloadStart = len(data)
	}

	return SingleFrame{Size: size, SID: sid, DID: did, Payload: append([]byte(nil), data[payloadStart:]...)}, nil
}

func decodeFirst(data []byte) (UdsFrame, error) {
	if len(data) < 3 {
		return nil, FrameError{Kind: InvalidSize}
	}
	size := (uint16(data[0]&0x0F) << 8) | uint16(data[1])
	sid := data[2]

	var did *uint16
	payloadStart := 3
	if len(data) >= 5 {
		v := uint16(data[3])<<8 | uint16(data[4])
		did = &v
		payloadStart = 5
	}
	if payloadStart > len(data) {
		payloadStart = len(data)
	}

	return FirstFrame{Size: size, SID: sid, DID: did, Payload: append([]byte(nil), data[payloadStart:]...)}, nil
}

func decodeConsecutive(data []byte) (UdsFrame, error) {
	seqNum := data[0] & 0x0F
	var payload []byte
	if len(data) > 1 {
		payload = append([]byte(nil), data[1:]...)
	}
	return ConsecutiveFrame{SeqNum: seqNum, Payload: payload}, nil
}

func decodeFlowControl(data []byte) (UdsFrame, error) {
	if len(data) < 3 {
		return nil, FrameError{Kind: InvalidSize}
	}
	flag := data[0] & 0x0F
	blockSize := data[1]
	separationTime := data[2]
	var padding []byte
	if len(data) > 3 {
		padding = append([]byte(nil), data[3:]...)
	}
	return FlowControlFrame{Flag: flag, BlockSize: blockSize, SeparationTime: separationTime, Padding: padding}, nil
}

package diag

import "fmt"

// Kind is the closed taxonomy of diagnostic errors a UDS request can fail
// with. Matching against Kind (rather than a message string) is how
// callers distinguish failure modes.
type Kind uint8

const (
	NotSupported Kind = iota
	ECUError
	EmptyResponse
	WrongMessage
	WrongPciType
	ServerNotRunning
	InvalidResponseLength
	ParameterInvalid
	ChannelError
	HardwareError
	NotImplemented
	MismatchedIdentResponse
	Timeout
	FrameErrorKind
	Other
)

func (k Kind) String() string {
	switch k {
	case NotSupported:
		return "NotSupported"
	case ECUError:
		return "ECUError"
	case EmptyResponse:
		return "EmptyResponse"
	case WrongMessage:
		return "WrongMessage"
	case WrongPciType:
		return "WrongPciType"
	case ServerNotRunning:
		return "ServerNotRunning"
	case InvalidResponseLength:
		return "InvalidResponseLength"
	case ParameterInvalid:
		return "ParameterInvalid"
	case ChannelError:
		return "ChannelError"
	case HardwareError:
		return "HardwareError"
	case NotImplemented:
		return "NotImplemented"
	case MismatchedIdentResponse:
		return "MismatchedIdentResponse"
	case Timeout:
		return "Timeout"
	case FrameErrorKind:
		return "FrameError"
	default:
		return "Other"
	}
}

// Error is the diagnostic client's single error type. Its Kind selects
// which of the optional fields below are meaningful; callers match on
// Kind via errors.As plus a type switch on Kind, not on Error().
type Error struct {
	Kind Kind

	// ECUError
	Code byte
	RSID byte
	Def  string // optional NRC name, empty if not resolved

	// WrongMessage, WrongPciType, MismatchedIdentResponse
	Want     string
	Received string

	// NotImplemented
	Name string

	// FrameErrorKind, or any Kind wrapping a lower-level cause
	Inner error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ECUError:
		if e.Def != "" {
			return fmt.Sprintf("ECU negative response: code 0x%02X (%s)", e.Code, e.Def)
		}
		return fmt.Sprintf("ECU negative response: code 0x%02X", e.Code)
	case WrongMessage:
		return fmt.Sprintf("unexpected response: want %s, received %s", e.Want, e.Received)
	case WrongPciType:
		return fmt.Sprintf("unexpected frame type: want %s, received %s", e.Want, e.Received)
	case MismatchedIdentResponse:
		return fmt.Sprintf("mismatched identifier: want %s, received %s", e.Want, e.Received)
	case NotImplemented:
		return fmt.Sprintf("not implemented: %s", e.Name)
	case FrameErrorKind:
		if e.Inner != nil {
			return fmt.Sprintf("frame decode error: %v", e.Inner)
		}
		return "frame decode error"
	case NotSupported:
		return "diagnostic server does not support the request"
	case EmptyResponse:
		return "ECU did not respond to the request"
	case ServerNotRunning:
		return "diagnostic server was terminated before the request"
	case InvalidResponseLength:
		return "ECU response size was not the correct length"
	case ParameterInvalid:
		return "diagnostic function parameter invalid"
	case ChannelError:
		return "diagnostic server hardware channel error"
	case HardwareError:
		return "diagnostic server hardware error"
	case Timeout:
		return "diagnostic server did not respond in time"
	default:
		return "diagnostic error"
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Inner }

// Is reports whether target is a *Error with the same Kind, letting
// callers write errors.Is(err, &diag.Error{Kind: diag.Timeout}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a bare *Error of the given kind with no extra fields set.
func New(kind Kind) *Error { return &Error{Kind: kind} }

// NewECUError builds an ECUError, resolving code against the NRC table
// when possible.
func NewECUError(code, rsid byte) *Error {
	def := ""
	if IsKnownNRC(code) {
		def = NRCName(code)
	}
	return &Error{Kind: ECUError, Code: code, RSID: rsid, Def: def}
}

// NewFrameError wraps a lower-level decode failure.
func NewFrameError(inner error) *Error {
	return &Error{Kind: FrameErrorKind, Inner: inner}
}

// NewNotImplemented builds a NotImplemented error naming the missing
// feature.
func NewNotImplemented(name string) *Error {
	return &Error{Kind: NotImplemented, Name: name}
}

package diag

import (
	"errors"
	"testing"
)

func TestNewECUError_ResolvesKnownNRC(t *testing.T) {
	err := NewECUError(NRCRequestCorrectlyReceivedResponsePending, ServiceECUReset)
	if err.Kind != ECUError {
		t.Errorf("Kind = %v, want ECUError", err.Kind)
	}
	if err.Def != "Request Correctly Received - Response Pending" {
		t.Errorf("Def = %q, not resolved", err.Def)
	}
	if err.RSID != ServiceECUReset {
		t.Errorf("RSID = 0x%02X, want 0x%02X", err.RSID, ServiceECUReset)
	}
}

func TestNewECUError_UnknownNRCLeavesDefEmpty(t *testing.T) {
	err := NewECUError(0xFE, ServiceECUReset)
	if err.Def != "" {
		t.Errorf("Def = %q, want empty for unknown NRC", err.Def)
	}
}

func TestError_IsMatchesOnKindOnly(t *testing.T) {
	a := &Error{Kind: Timeout}
	b := &Error{Kind: Timeout, Inner: errors.New("different cause")}
	if !errors.Is(a, b) {
		t.Errorf("expected errors with the same Kind to match via Is")
	}

	c := &Error{Kind: ECUError}
	if errors.Is(a, c) {
		t.Errorf("expected errors with different Kinds not to match via Is")
	}
}

func TestError_UnwrapExposesInner(t *testing.T) {
	inner := errors.New("decode failed")
	err := NewFrameError(inner)
	if !errors.Is(err, inner) {
		t.Errorf("expected errors.Is to find the wrapped inner error")
	}
}

func TestError_Message(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want string
	}{
		{"ecu with def", &Error{Kind: ECUError, Code: 0x78, Def: "Request Correctly Received - Response Pending"}, "ECU negative response: code 0x78 (Request Correctly Received - Response Pending)"},
		{"ecu without def", &Error{Kind: ECUError, Code: 0xFE}, "ECU negative response: code 0xFE"},
		{"timeout", New(Timeout), "diagnostic server did not respond in time"},
		{"not implemented", NewNotImplemented("TransferData"), "not implemented: TransferData"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsKnownSIDAndNRC(t *testing.T) {
	if !IsKnownSID(ServiceECUReset) {
		t.Errorf("expected ServiceECUReset to be known")
	}
	if IsKnownSID(0xFE) {
		t.Errorf("expected 0xFE not to be a known SID")
	}
	if !IsKnownNRC(NRCGeneralReject) {
		t.Errorf("expected NRCGeneralReject to be known")
	}
	if IsKnownNRC(0xFE) {
		t.Errorf("expected 0xFE not to be a known NRC")
	}
}

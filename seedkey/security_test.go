package seedkey

import (
	"errors"
	"testing"
	"time"

	"udscan/canbus"
	"udscan/client"
	"udscan/diag"
	"udscan/respslot"
)

type fakeTx struct{}

func (fakeTx) Transmit(canbus.Frame) error { return nil }

func TestRequestSeed_NotImplemented(t *testing.T) {
	c := client.New(fakeTx{}, canbus.ID(0x784), respslot.New(time.Second))

	_, err := RequestSeed(c, 0x01)
	var de *diag.Error
	if !errors.As(err, &de) || de.Kind != diag.NotImplemented {
		t.Fatalf("expected NotImplemented, got %v", err)
	}
}

func TestSendKey_NotImplemented(t *testing.T) {
	c := client.New(fakeTx{}, canbus.ID(0x784), respslot.New(time.Second))

	err := SendKey(c, 0x01, []byte{0xAA, 0xBB})
	var de *diag.Error
	if !errors.As(err, &de) || de.Kind != diag.NotImplemented {
		t.Fatalf("expected NotImplemented, got %v", err)
	}
}

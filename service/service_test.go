package service

import (
	"errors"
	"testing"
	"time"

	"udscan/canbus"
	"udscan/client"
	"udscan/diag"
	"udscan/respslot"
)

type fakeTx struct {
	sent []canbus.Frame
}

func (f *fakeTx) Transmit(frame canbus.Frame) error {
	f.sent = append(f.sent, frame)
	return nil
}

func TestECUReset_SendsExpectedWireBytes(t *testing.T) {
	tx := &fakeTx{}
	slot := respslot.New(time.Second)
	c := client.New(tx, canbus.ID(0x784), slot)

	go func() {
		time.Sleep(10 * time.Millisecond)
		slot.Update([]byte{0x02, 0x51, ECUResetSubID1})
	}()

	if err := ECUReset(c, ECUResetSubID1); err != nil {
		t.Fatalf("ECUReset returned error: %v", err)
	}
	if len(tx.sent) != 1 {
		t.Fatalf("expected one frame sent, got %d", len(tx.sent))
	}
	want := []byte{0x02, 0x11, ECUResetSubID1}
	got := tx.sent[0]
	for i, b := range want {
		if got.Data[i] != b {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got.Data[i], b)
		}
	}
}

func TestECUReset_NegativeResponseSurfaced(t *testing.T) {
	tx := &fakeTx{}
	slot := respslot.New(time.Second)
	c := client.New(tx, canbus.ID(0x784), slot)

	go func() {
		time.Sleep(10 * time.Millisecond)
		slot.Update([]byte{0x03, 0x7F, 0x11, diag.NRCSubFunctionNotSupported})
	}()

	err := ECUReset(c, 0xFF)
	var de *diag.Error
	if !errors.As(err, &de) || de.Kind != diag.ECUError || de.Code != diag.NRCSubFunctionNotSupported {
		t.Fatalf("expected ECUError{SubFunctionNotSupported}, got %v", err)
	}
}

func TestReadDataByPeriodicIdentifierStart_DrivesMultiFrame(t *testing.T) {
	tx := &fakeTx{}
	slot := respslot.New(time.Second)
	c := client.New(tx, canbus.ID(0x784), slot)

	firstFrame := []byte{0x10, 0x05, 0x6A, 0x00, 0xB0, 0x01, 0x02, 0x03}
	cf := []byte{0x21, 0x04, 0x05}

	go func() {
		time.Sleep(10 * time.Millisecond)
		slot.Update(firstFrame)
		time.Sleep(10 * time.Millisecond)
		slot.Update(cf)
	}()

	data, err := ReadDataByPeriodicIdentifierStart(c, RateFast)
	if err != nil {
		t.Fatalf("ReadDataByPeriodicIdentifierStart returned error: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	if len(data) != len(want) {
		t.Fatalf("data = % X, want % X", data, want)
	}
	for i, b := range want {
		if data[i] != b {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, data[i], b)
		}
	}

	if len(tx.sent) == 0 {
		t.Fatalf("expected at least the initial request frame to be sent")
	}
	initial := tx.sent[0]
	wantInitial := []byte{0x03, diag.ServiceReadDataByPeriodicIdentifier, RateFast, periodicIdentifier}
	for i, b := range wantInitial {
		if initial.Data[i] != b {
			t.Errorf("initial request byte %d = 0x%02X, want 0x%02X", i, initial.Data[i], b)
		}
	}
}

func TestTransferData_NotImplemented(t *testing.T) {
	tx := &fakeTx{}
	slot := respslot.New(time.Second)
	c := client.New(tx, canbus.ID(0x784), slot)

	_, err := TransferData(c, []byte{0x01})
	var de *diag.Error
	if !errors.As(err, &de) || de.Kind != diag.NotImplemented {
		t.Fatalf("expected NotImplemented, got %v", err)
	}
}

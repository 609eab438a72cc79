package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshjn/vendura-api/internal/domain/entity"
	"github.com/nimeshjn/vendura-api/internal/domain/enum"
	"github.com/nimeshjn/vendura-api/pkg/apperror"
)

func TestOpenRegisterRejectsSecondSession(t *testing.T) {
	vendorID := uuid.New()
	svc := NewRegisterService(newFakeRegisterRepo())

	first, err := svc.OpenRegister(context.Background(), &OpenRegisterInput{
		VendorID:     vendorID,
		CashierName:  "Asha",
		OpeningFloat: 200,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if first.OpeningFloat != 20000 {
		t.Fatalf("opening float = %d, want 20000 paise", first.OpeningFloat)
	}
	if !first.IsOpen() {
		t.Fatal("session should be open")
	}

	_, err = svc.OpenRegister(context.Background(), &OpenRegisterInput{
		VendorID:     vendorID,
		CashierName:  "Ravi",
		OpeningFloat: 100,
	})
	if !errors.Is(err, apperror.ErrRegisterOpen) {
		t.Fatalf("expected ErrRegisterOpen, got %v", err)
	}

	// A different vendor is unaffected
	if _, err := svc.OpenRegister(context.Background(), &OpenRegisterInput{
		VendorID:     uuid.New(),
		CashierName:  "Meena",
		OpeningFloat: 50,
	}); err != nil {
		t.Fatalf("other vendor open: %v", err)
	}
}

func TestCloseRegisterReconciles(t *testing.T) {
	vendorID := uuid.New()
	repo := newFakeRegisterRepo(&entity.RegisterSession{
		VendorID:       vendorID,
		OpeningFloat:   20000,
		TotalCashSales: 30000,
		Status:         enum.SessionStatusOpen,
		OpenedAt:       time.Now().Add(-time.Hour),
	})
	svc := NewRegisterService(repo)

	out, err := svc.CloseRegister(context.Background(), &CloseRegisterInput{
		VendorID:      vendorID,
		ClosingAmount: 480,
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	if out.Summary.ExpectedCash != 50000 {
		t.Fatalf("expected cash = %d, want 50000", out.Summary.ExpectedCash)
	}
	if out.Summary.Variance != -2000 {
		t.Fatalf("variance = %d, want -2000", out.Summary.Variance)
	}
	if out.Summary.VarianceStatus != enum.VarianceStatusShort {
		t.Fatalf("status = %s, want short", out.Summary.VarianceStatus)
	}
	if out.Session.Status != enum.SessionStatusClosed || out.Session.ClosedAt == nil {
		t.Fatal("session not closed")
	}

	// Closing again is a conflict, the register is no longer open
	_, err = svc.CloseRegister(context.Background(), &CloseRegisterInput{
		VendorID:      vendorID,
		ClosingAmount: 0,
	})
	if !errors.Is(err, apperror.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen, got %v", err)
	}
}

func TestRegisterStatusPayloadKeys(t *testing.T) {
	body, err := json.Marshal(&RegisterStatus{IsOpen: false})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := payload["register_open"]; !ok {
		t.Fatalf("payload missing register_open key: %s", body)
	}
	if _, ok := payload["session"]; ok {
		t.Fatalf("closed register should omit session: %s", body)
	}
}

func TestGetStatus(t *testing.T) {
	vendorID := uuid.New()
	svc := NewRegisterService(newFakeRegisterRepo())

	status, err := svc.GetStatus(context.Background(), vendorID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.IsOpen || status.Session != nil {
		t.Fatal("register should be closed")
	}

	if _, err := svc.OpenRegister(context.Background(), &OpenRegisterInput{
		VendorID:     vendorID,
		CashierName:  "Asha",
		OpeningFloat: 100,
	}); err != nil {
		t.Fatalf("open: %v", err)
	}

	status, err = svc.GetStatus(context.Background(), vendorID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.IsOpen || status.Session == nil {
		t.Fatal("register should be open")
	}
}

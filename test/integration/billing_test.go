package integration

import (
	"context"
	"math"
	"testing"

	"github.com/hbill/hbill/internal/domain/billing"
	"github.com/hbill/hbill/internal/domain/patient"
	"github.com/hbill/hbill/internal/platform/apperr"
)

func TestBilling_GenerateAndSettle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.addPatient(t, "Jane Doe", patient.AddInput{Age: "54"})
	b := e.generateBill(t, billing.GenerateInput{
		PatientID:       id,
		RoomCharges:     "1500.50",
		DoctorFees:      "800",
		MedicineCharges: "650.25",
		LabCharges:      "1200",
		OtherCharges:    "100",
		PaymentStatus:   billing.StatusPartial,
		AmountPaid:      "2000",
		PaymentMethod:   "Cash",
	})

	if math.Abs(b.TotalAmount-4250.75) > 1e-9 {
		t.Fatalf("total = %v, want 4250.75", b.TotalAmount)
	}

	stored, err := e.bills.Get(ctx, b.BillNo)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if math.Abs(stored.AmountPaid+stored.BalanceDue-stored.TotalAmount) > 1e-9 {
		t.Fatalf("paid+balance must equal total: %+v", stored)
	}

	if _, err := e.bills.ApplyPayment(ctx, b.BillNo, 5000, "Cash"); !apperr.IsValidation(err) {
		t.Fatalf("overpay must be rejected, got %v", err)
	}

	final, err := e.bills.ApplyPayment(ctx, b.BillNo, 2250.75, "Card")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if final.PaymentStatus != billing.StatusPaid || final.BalanceDue != 0 {
		t.Fatalf("after settling: %+v", final)
	}

	if _, err := e.bills.ApplyPayment(ctx, b.BillNo, 0.01, "Cash"); !apperr.IsValidation(err) {
		t.Fatalf("settled bill must reject further payments, got %v", err)
	}

	history, err := e.bills.PaymentHistory(ctx, b.BillNo)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected opening payment plus settlement, got %d entries", len(history))
	}
}

func TestBilling_OutstandingOrderedByBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.addPatient(t, "Jane Doe", patient.AddInput{})
	e.generateBill(t, billing.GenerateInput{PatientID: id, RoomCharges: "300"})
	big := e.generateBill(t, billing.GenerateInput{PatientID: id, RoomCharges: "900"})
	paid := e.generateBill(t, billing.GenerateInput{
		PatientID: id, RoomCharges: "500", PaymentStatus: billing.StatusPaid,
	})

	out, err := e.bills.ListOutstanding(ctx)
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 outstanding bills, got %d", len(out))
	}
	if out[0].BillNo != big.BillNo {
		t.Errorf("largest balance should come first, got bill #%d", out[0].BillNo)
	}
	for _, b := range out {
		if b.BillNo == paid.BillNo {
			t.Error("settled bill must not appear in outstanding list")
		}
	}
}

func TestBilling_ListByPatientNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	jane := e.addPatient(t, "Jane Doe", patient.AddInput{})
	john := e.addPatient(t, "John Smith", patient.AddInput{})
	e.generateBill(t, billing.GenerateInput{PatientID: jane, RoomCharges: "100"})
	second := e.generateBill(t, billing.GenerateInput{PatientID: jane, RoomCharges: "200"})
	e.generateBill(t, billing.GenerateInput{PatientID: john, RoomCharges: "300"})

	bills, err := e.bills.ListByPatient(ctx, jane)
	if err != nil {
		t.Fatalf("list by patient: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills for jane, got %d", len(bills))
	}
	if bills[0].BillNo != second.BillNo {
		t.Errorf("newest bill should come first, got #%d", bills[0].BillNo)
	}
}

func TestBilling_NegativeChargeFlowsThrough(t *testing.T) {
	e := newEnv(t)

	id := e.addPatient(t, "Jane Doe", patient.AddInput{})
	b := e.generateBill(t, billing.GenerateInput{
		PatientID:    id,
		RoomCharges:  "1000",
		OtherCharges: "-200",
	})

	// adjustments entered as negative charges reduce the total
	if math.Abs(b.TotalAmount-800) > 1e-9 {
		t.Fatalf("total = %v, want 800", b.TotalAmount)
	}
}

package billing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hbill/hbill/internal/platform/apperr"
)

func TestParseCharges_BlanksAreZero(t *testing.T) {
	c, err := ParseCharges("1500", "", "", "", "")
	if err != nil {
		t.Fatalf("ParseCharges: %v", err)
	}
	if !c.Room.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("room = %s, want 1500", c.Room)
	}
	if !c.Doctor.IsZero() || !c.Other.IsZero() {
		t.Fatal("blank charges must parse as zero")
	}
}

func TestParseCharges_RejectsNonNumeric(t *testing.T) {
	_, err := ParseCharges("1500", "abc", "", "", "")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTotal_SumsAllFiveCharges(t *testing.T) {
	c, err := ParseCharges("1500.50", "800", "650.25", "1200", "100")
	if err != nil {
		t.Fatalf("ParseCharges: %v", err)
	}
	want := decimal.NewFromFloat(4250.75)
	if !c.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", c.Total(), want)
	}
}

func TestAmountPaidFor(t *testing.T) {
	total := decimal.NewFromInt(1000)

	cases := []struct {
		name    string
		status  string
		entered decimal.Decimal
		want    decimal.Decimal
		wantErr bool
	}{
		{"pending ignores entered", StatusPending, decimal.NewFromInt(300), decimal.Zero, false},
		{"paid covers total", StatusPaid, decimal.Zero, total, false},
		{"partial keeps entered", StatusPartial, decimal.NewFromInt(400), decimal.NewFromInt(400), false},
		{"partial rejects zero", StatusPartial, decimal.Zero, decimal.Zero, true},
		{"partial rejects overpay", StatusPartial, decimal.NewFromInt(1001), decimal.Zero, true},
		{"unknown status", "Settled", decimal.Zero, decimal.Zero, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AmountPaidFor(tc.status, total, tc.entered)
			if tc.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AmountPaidFor: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("paid = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	total := decimal.NewFromInt(500)

	cases := []struct {
		paid decimal.Decimal
		want string
	}{
		{decimal.Zero, StatusPending},
		{decimal.NewFromInt(200), StatusPartial},
		{decimal.NewFromInt(500), StatusPaid},
		{decimal.NewFromInt(600), StatusPaid},
	}

	for _, tc := range cases {
		if got := StatusFor(total, tc.paid); got != tc.want {
			t.Errorf("StatusFor(500, %s) = %s, want %s", tc.paid, got, tc.want)
		}
	}
}

func TestReceipt_ContainsAmountsAndStatus(t *testing.T) {
	b := &Bill{
		BillNo:      7,
		PatientID:   3,
		PatientName: "Jane Doe",
		BillDate:    "2026-08-30",
		RoomCharges: 1500, TotalAmount: 1500, AmountPaid: 500, BalanceDue: 1000,
		PaymentStatus: StatusPartial,
	}

	got := b.Receipt("City Hospital")
	for _, want := range []string{"City Hospital", "Bill No       : 7", "Jane Doe", "1500.00", "Partial", "N/A"} {
		if !strings.Contains(got, want) {
			t.Errorf("receipt missing %q:\n%s", want, got)
		}
	}
}

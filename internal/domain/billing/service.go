package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hbill/hbill/internal/platform/apperr"
	"github.com/hbill/hbill/internal/platform/db"
)

// PatientDirectory resolves patient ids to display names. Implemented by the
// patient service; the indirection keeps billing independent of the registry
// package.
type PatientDirectory interface {
	PatientName(ctx context.Context, id int64) (string, error)
}

type Service struct {
	bills    Repository
	payments PaymentRepository
	patients PatientDirectory
	tx       db.Transactor
	log      zerolog.Logger
}

func NewService(bills Repository, payments PaymentRepository, patients PatientDirectory, tx db.Transactor, log zerolog.Logger) *Service {
	return &Service{bills: bills, payments: payments, patients: patients, tx: tx, log: log}
}

// GenerateInput carries the bill form fields. Charge fields are the raw
// entry strings; blanks count as zero.
type GenerateInput struct {
	PatientID       int64
	RoomCharges     string
	DoctorFees      string
	MedicineCharges string
	LabCharges      string
	OtherCharges    string
	PaymentStatus   string
	AmountPaid      string
	PaymentMethod   string
}

// Generate creates a bill for a patient and, when any amount is paid up
// front, records the opening ledger entry in the same transaction.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Bill, error) {
	name, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	charges, err := ParseCharges(in.RoomCharges, in.DoctorFees, in.MedicineCharges, in.LabCharges, in.OtherCharges)
	if err != nil {
		return nil, err
	}

	status := in.PaymentStatus
	if status == "" {
		status = StatusPending
	}

	entered := decimal.Zero
	if in.AmountPaid != "" {
		if entered, err = decimal.NewFromString(in.AmountPaid); err != nil {
			return nil, apperr.Validationf("amount paid must be a number, got %q", in.AmountPaid)
		}
	}

	total := charges.Total()
	paid, err := AmountPaidFor(status, total, entered)
	if err != nil {
		return nil, err
	}
	balance := total.Sub(paid)
	// A partial payment covering the whole total must be stored as Paid,
	// keeping the status in step with the amounts.
	status = StatusFor(total, paid)

	now := time.Now()
	b := &Bill{
		PatientID:       in.PatientID,
		PatientName:     name,
		BillDate:        now.Format("2006-01-02"),
		RoomCharges:     round2(charges.Room),
		DoctorFees:      round2(charges.Doctor),
		MedicineCharges: round2(charges.Medicine),
		LabCharges:      round2(charges.Lab),
		OtherCharges:    round2(charges.Other),
		TotalAmount:     round2(total),
		AmountPaid:      round2(paid),
		BalanceDue:      round2(balance),
		PaymentStatus:   status,
		PaymentMethod:   optionalMethod(in.PaymentMethod),
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.bills.Create(ctx, b); err != nil {
			return apperr.Storage("insert bill", err)
		}
		if paid.Sign() > 0 {
			p := &Payment{
				BillNo:        b.BillNo,
				Amount:        round2(paid),
				PaymentDate:   now.Format("2006-01-02 15:04:05"),
				PaymentMethod: b.PaymentMethod,
			}
			if err := s.payments.Create(ctx, p); err != nil {
				return apperr.Storage("insert payment", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("bill_no", b.BillNo).
		Int64("patient_id", b.PatientID).
		Float64("total", b.TotalAmount).
		Str("status", b.PaymentStatus).
		Msg("bill generated")
	return b, nil
}

// ApplyPayment records a payment against a bill. The bill is re-read, the
// amounts adjusted, and the ledger entry written inside one transaction so a
// concurrent payment cannot split them.
func (s *Service) ApplyPayment(ctx context.Context, billNo int64, amount float64, method string) (*Bill, error) {
	if amount <= 0 {
		return nil, apperr.Validationf("payment amount must be positive")
	}

	var updated *Bill
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.bills.GetByNo(ctx, billNo)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("bill", billNo)
		}
		if err != nil {
			return apperr.Storage("lookup bill", err)
		}

		pay := decimal.NewFromFloat(amount)
		balance := decimal.NewFromFloat(b.BalanceDue)
		if pay.GreaterThan(balance) {
			return apperr.Validationf("payment %s exceeds balance due %s",
				pay.StringFixed(2), balance.StringFixed(2))
		}

		paid := decimal.NewFromFloat(b.AmountPaid).Add(pay)
		newBalance := decimal.NewFromFloat(b.TotalAmount).Sub(paid)
		status := StatusFor(decimal.NewFromFloat(b.TotalAmount), paid)

		m := optionalMethod(method)
		if err := s.bills.ApplyPayment(ctx, billNo, round2(paid), round2(newBalance), status, m); err != nil {
			return apperr.Storage("update bill payment", err)
		}

		p := &Payment{
			BillNo:        billNo,
			Amount:        round2(pay),
			PaymentDate:   time.Now().Format("2006-01-02 15:04:05"),
			PaymentMethod: m,
		}
		if err := s.payments.Create(ctx, p); err != nil {
			return apperr.Storage("insert payment", err)
		}

		b.AmountPaid = round2(paid)
		b.BalanceDue = round2(newBalance)
		b.PaymentStatus = status
		if m != nil {
			b.PaymentMethod = m
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("bill_no", billNo).
		Float64("amount", amount).
		Str("status", updated.PaymentStatus).
		Msg("payment recorded")
	return updated, nil
}

// Get returns the bill with the given number.
func (s *Service) Get(ctx context.Context, billNo int64) (*Bill, error) {
	b, err := s.bills.GetByNo(ctx, billNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("bill", billNo)
	}
	if err != nil {
		return nil, apperr.Storage("lookup bill", err)
	}
	return b, nil
}

// List returns all bills, newest first.
func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	out, err := s.bills.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list bills", err)
	}
	return out, nil
}

// ListByPatient returns a patient's bills, newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error) {
	out, err := s.bills.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperr.Storage("list patient bills", err)
	}
	return out, nil
}

// ListOutstanding returns bills with a positive balance, largest balance
// first.
func (s *Service) ListOutstanding(ctx context.Context) ([]*Bill, error) {
	out, err := s.bills.ListOutstanding(ctx)
	if err != nil {
		return nil, apperr.Storage("list outstanding bills", err)
	}
	return out, nil
}

// PaymentHistory returns the ledger for a bill, newest first.
func (s *Service) PaymentHistory(ctx context.Context, billNo int64) ([]*Payment, error) {
	if _, err := s.Get(ctx, billNo); err != nil {
		return nil, err
	}
	out, err := s.payments.ListByBill(ctx, billNo)
	if err != nil {
		return nil, apperr.Storage("list payments", err)
	}
	return out, nil
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func optionalMethod(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

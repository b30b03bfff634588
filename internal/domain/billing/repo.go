package billing

import "context"

// Repository persists bills. GetByNo returns sql.ErrNoRows when the bill
// does not exist; services translate that into a not-found error.
type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByNo(ctx context.Context, billNo int64) (*Bill, error)
	List(ctx context.Context) ([]*Bill, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error)
	ListOutstanding(ctx context.Context) ([]*Bill, error)
	ApplyPayment(ctx context.Context, billNo int64, amountPaid, balanceDue float64, status string, method *string) error
}

// PaymentRepository persists the per-bill payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByBill(ctx context.Context, billNo int64) ([]*Payment, error)
}

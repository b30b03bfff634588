package billing

import (
	"context"
	"database/sql"

	"github.com/hbill/hbill/internal/platform/db"
)

type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type repoSQLite struct {
	store *db.Store
}

func NewRepository(store *db.Store) Repository {
	return &repoSQLite{store: store}
}

func (r *repoSQLite) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.store.Handle()
}

const billCols = `bill_no, patient_id, patient_name, bill_date,
	room_charges, doctor_fees, medicine_charges, lab_charges, other_charges,
	total_amount, amount_paid, balance_due, payment_status, payment_method`

func scanBill(row interface{ Scan(dest ...any) error }) (*Bill, error) {
	var b Bill
	err := row.Scan(
		&b.BillNo, &b.PatientID, &b.PatientName, &b.BillDate,
		&b.RoomCharges, &b.DoctorFees, &b.MedicineCharges, &b.LabCharges, &b.OtherCharges,
		&b.TotalAmount, &b.AmountPaid, &b.BalanceDue, &b.PaymentStatus, &b.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repoSQLite) Create(ctx context.Context, b *Bill) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO bills (patient_id, patient_name, bill_date,
			room_charges, doctor_fees, medicine_charges, lab_charges, other_charges,
			total_amount, amount_paid, balance_due, payment_status, payment_method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.PatientID, b.PatientName, b.BillDate,
		b.RoomCharges, b.DoctorFees, b.MedicineCharges, b.LabCharges, b.OtherCharges,
		b.TotalAmount, b.AmountPaid, b.BalanceDue, b.PaymentStatus, b.PaymentMethod,
	)
	if err != nil {
		return err
	}
	b.BillNo, err = res.LastInsertId()
	return err
}

func (r *repoSQLite) GetByNo(ctx context.Context, billNo int64) (*Bill, error) {
	row := r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+billCols+` FROM bills WHERE bill_no = ?`, billNo)
	return scanBill(row)
}

func (r *repoSQLite) List(ctx context.Context) ([]*Bill, error) {
	return r.queryBills(ctx, `SELECT `+billCols+` FROM bills ORDER BY bill_no DESC`)
}

func (r *repoSQLite) ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error) {
	return r.queryBills(ctx,
		`SELECT `+billCols+` FROM bills WHERE patient_id = ? ORDER BY bill_no DESC`, patientID)
}

func (r *repoSQLite) ListOutstanding(ctx context.Context) ([]*Bill, error) {
	return r.queryBills(ctx,
		`SELECT `+billCols+` FROM bills WHERE balance_due > 0 ORDER BY balance_due DESC`)
}

func (r *repoSQLite) queryBills(ctx context.Context, query string, args ...any) ([]*Bill, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repoSQLite) ApplyPayment(ctx context.Context, billNo int64, amountPaid, balanceDue float64, status string, method *string) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		UPDATE bills
		SET amount_paid = ?, balance_due = ?, payment_status = ?,
			payment_method = COALESCE(?, payment_method)
		WHERE bill_no = ?`,
		amountPaid, balanceDue, status, method, billNo)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type paymentRepoSQLite struct {
	store *db.Store
}

func NewPaymentRepository(store *db.Store) PaymentRepository {
	return &paymentRepoSQLite{store: store}
}

func (r *paymentRepoSQLite) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.store.Handle()
}

func (r *paymentRepoSQLite) Create(ctx context.Context, p *Payment) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO payments (bill_no, amount, payment_date, payment_method)
		VALUES (?, ?, ?, ?)`,
		p.BillNo, p.Amount, p.PaymentDate, p.PaymentMethod)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *paymentRepoSQLite) ListByBill(ctx context.Context, billNo int64) ([]*Payment, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT payment_id, bill_no, amount, payment_date, payment_method
		FROM payments WHERE bill_no = ? ORDER BY payment_date DESC, payment_id DESC`, billNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.BillNo, &p.Amount, &p.PaymentDate, &p.PaymentMethod); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

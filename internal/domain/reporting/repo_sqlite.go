package reporting

import (
	"context"
	"database/sql"

	"github.com/hbill/hbill/internal/platform/db"
)

type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
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

func (r *repoSQLite) BillTotals(ctx context.Context) (BillTotals, error) {
	var t BillTotals
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(amount_paid), 0),
			COALESCE(SUM(balance_due), 0),
			COALESCE(AVG(total_amount), 0)
		FROM bills`).Scan(&t.Count, &t.Billed, &t.Collected, &t.Outstanding, &t.AverageBill)
	return t, err
}

func (r *repoSQLite) StatusBreakdown(ctx context.Context) ([]StatusBreakdown, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT payment_status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM bills
		GROUP BY payment_status
		ORDER BY payment_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusBreakdown
	for rows.Next() {
		var s StatusBreakdown
		if err := rows.Scan(&s.Status, &s.Count, &s.Amount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repoSQLite) PatientCounts(ctx context.Context) (PatientCounts, error) {
	var c PatientCounts
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(CASE WHEN gender = 'M' THEN 1 END),
			COUNT(CASE WHEN gender = 'F' THEN 1 END),
			COALESCE(AVG(age), 0),
			COALESCE(MIN(age), 0),
			COALESCE(MAX(age), 0)
		FROM patients`).Scan(&c.Total, &c.Male, &c.Female, &c.AvgAge, &c.MinAge, &c.MaxAge)
	return c, err
}

func (r *repoSQLite) TopDiseases(ctx context.Context, limit int) ([]DiseaseCount, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT disease, COUNT(*) AS n FROM patients
		WHERE disease IS NOT NULL AND disease != ''
		GROUP BY disease
		ORDER BY n DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DiseaseCount
	for rows.Next() {
		var d DiseaseCount
		if err := rows.Scan(&d.Disease, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repoSQLite) DayCounters(ctx context.Context, day string) (DayCounters, error) {
	var c DayCounters
	conn := r.conn(ctx)

	if err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments`).Scan(&c.Payments); err != nil {
		return DayCounters{}, err
	}
	if err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM patients WHERE admission_date = ?`, day).Scan(&c.NewPatients); err != nil {
		return DayCounters{}, err
	}
	if err := conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE date(payment_date) = ?`, day).Scan(&c.Revenue); err != nil {
		return DayCounters{}, err
	}
	if err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE payment_status = 'Pending'`).Scan(&c.PendingBills); err != nil {
		return DayCounters{}, err
	}
	return c, nil
}

func (r *repoSQLite) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT strftime('%Y-%m', bill_date) AS month,
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(amount_paid), 0),
			COALESCE(SUM(balance_due), 0),
			COUNT(*)
		FROM bills
		GROUP BY month
		ORDER BY month DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Billed, &m.Collected, &m.Outstanding, &m.BillCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

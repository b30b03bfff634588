package patient

import (
	"context"
	"database/sql"

	"github.com/hbill/hbill/internal/platform/db"
)

type queryable interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type repoSQLite struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repoSQLite{store: store} }

func (r *repoSQLite) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.store.Handle()
}

const patientCols = `id, name, age, gender, contact, address, disease, admission_date, created_at`

func scanPatient(row *sql.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact,
		&p.Address, &p.Disease, &p.AdmissionDate, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoSQLite) Create(ctx context.Context, p *Patient) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO patients (name, age, gender, contact, address, disease, admission_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Age, p.Gender, p.Contact, p.Address, p.Disease, p.AdmissionDate)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *repoSQLite) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = ?`, id))
}

func (r *repoSQLite) Update(ctx context.Context, id int64, u *Update) error {
	// NULLIF turns blank input into NULL, COALESCE falls back to the stored
	// value, so a blank field never overwrites data.
	_, err := r.conn(ctx).ExecContext(ctx, `
		UPDATE patients
		SET name = COALESCE(NULLIF(?, ''), name),
		    age = COALESCE(NULLIF(?, ''), age),
		    gender = COALESCE(NULLIF(?, ''), gender),
		    contact = COALESCE(NULLIF(?, ''), contact),
		    address = COALESCE(NULLIF(?, ''), address),
		    disease = COALESCE(NULLIF(?, ''), disease)
		WHERE id = ?`,
		u.Name, u.Age, u.Gender, u.Contact, u.Address, u.Disease, id)
	return err
}

func (r *repoSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
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

const summaryCols = `id, name, age, gender, contact, admission_date`

func (r *repoSQLite) Search(ctx context.Context, criterion, term string) ([]*Summary, error) {
	var rows *sql.Rows
	var err error
	switch criterion {
	case ByID:
		rows, err = r.conn(ctx).QueryContext(ctx,
			`SELECT `+summaryCols+` FROM patients WHERE id = ?`, term)
	case ByContact:
		rows, err = r.conn(ctx).QueryContext(ctx,
			`SELECT `+summaryCols+` FROM patients WHERE contact LIKE ? ORDER BY name`, "%"+term+"%")
	default:
		rows, err = r.conn(ctx).QueryContext(ctx,
			`SELECT `+summaryCols+` FROM patients WHERE name LIKE ? ORDER BY name`, "%"+term+"%")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Age, &s.Gender, &s.Contact, &s.AdmissionDate); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoSQLite) List(ctx context.Context, term string) ([]*Patient, error) {
	query := `SELECT ` + patientCols + ` FROM patients ORDER BY name`
	args := []interface{}{}
	if term != "" {
		query = `SELECT ` + patientCols + ` FROM patients
			WHERE name LIKE ? OR contact LIKE ? ORDER BY name`
		args = []interface{}{"%" + term + "%", "%" + term + "%"}
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact,
			&p.Address, &p.Disease, &p.AdmissionDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

package identity

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

const userCols = `id, username, password, role, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoSQLite) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE username = ?`, username))
}

func (r *repoSQLite) List(ctx context.Context) ([]*User, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT `+userCols+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &u)
	}
	return items, rows.Err()
}

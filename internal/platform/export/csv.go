// Package export writes store tables out as CSV files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hbill/hbill/internal/platform/apperr"
	"github.com/hbill/hbill/internal/platform/db"
)

// Tables that may be exported. Anything else is rejected before touching
// the store, so table names never reach SQL unchecked.
var exportable = map[string]bool{
	"patients": true,
	"bills":    true,
	"payments": true,
	"users":    true,
}

// Tables lists the exportable table names in export-all order.
func Tables() []string {
	return []string{"patients", "bills", "payments", "users"}
}

type Exporter struct {
	store *db.Store
	dir   string
	log   zerolog.Logger
}

func New(store *db.Store, dir string, log zerolog.Logger) *Exporter {
	return &Exporter{store: store, dir: dir, log: log}
}

// Table writes one table to a timestamped CSV file and returns its path.
// The header row always appears, even when the table is empty.
func (e *Exporter) Table(ctx context.Context, table string) (string, error) {
	if !exportable[table] {
		return "", apperr.Validationf("table %q cannot be exported", table)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", apperr.Storage("create export directory", err)
	}

	rows, err := e.store.Handle().QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return "", apperr.Storage("read "+table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", apperr.Storage("read "+table+" columns", err)
	}

	name := fmt.Sprintf("%s_%s.csv", table, time.Now().Format("20060102_150405"))
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", apperr.Storage("create export file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return "", apperr.Storage("write csv header", err)
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	var n int
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return "", apperr.Storage("scan "+table+" row", err)
		}
		record := make([]string, len(cols))
		for i, v := range vals {
			record[i] = format(v)
		}
		if err := w.Write(record); err != nil {
			return "", apperr.Storage("write csv row", err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return "", apperr.Storage("read "+table+" rows", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperr.Storage("flush csv", err)
	}

	e.log.Info().Str("table", table).Int("rows", n).Str("file", path).Msg("table exported")
	return path, nil
}

// All exports every table and returns the written paths.
func (e *Exporter) All(ctx context.Context) ([]string, error) {
	var paths []string
	for _, table := range Tables() {
		path, err := e.Table(ctx, table)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%g", x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}

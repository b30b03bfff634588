// Package db owns the embedded SQLite store: opening the handle, schema
// creation and seeding, the transaction helper, and file-copy backups.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the single process-lifetime connection to the SQLite file.
// The handle is swapped during Backup, so repositories hold the Store and
// resolve the current handle per call instead of caching *sql.DB.
type Store struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, db: db}, nil
}

func open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// One logical session: a single connection, held for the process lifetime.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	return db, nil
}

// Handle returns the current database handle.
func (s *Store) Handle() *sql.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// Path returns the store file path.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Backup copies the store file byte-for-byte to a timestamped file under
// backupDir, creating the directory on first use. The connection is closed
// for the duration of the copy so no writer can touch the file, then
// reopened. Returns the backup path.
func (s *Store) Backup(ctx context.Context, backupDir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("hospital_backup_%s.db", time.Now().Format("20060102_150405"))
	dst := filepath.Join(backupDir, name)

	if err := s.db.Close(); err != nil {
		return "", fmt.Errorf("close store for backup: %w", err)
	}

	copyErr := copyFile(s.path, dst)

	db, openErr := open(ctx, s.path)
	if openErr != nil {
		return "", fmt.Errorf("reopen store after backup: %w", openErr)
	}
	s.db = db

	if copyErr != nil {
		return "", fmt.Errorf("copy store file: %w", copyErr)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

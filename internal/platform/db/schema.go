package db

import (
	"context"
	"fmt"
)

// The four tables are the durable interface of the system; the DDL must stay
// compatible with existing hospital.db files.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT DEFAULT 'staff',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		age INTEGER,
		gender TEXT,
		contact TEXT,
		address TEXT,
		disease TEXT,
		admission_date DATE DEFAULT CURRENT_DATE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		bill_no INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id INTEGER,
		patient_name TEXT,
		bill_date DATE DEFAULT CURRENT_DATE,
		room_charges REAL DEFAULT 0,
		doctor_fees REAL DEFAULT 0,
		medicine_charges REAL DEFAULT 0,
		lab_charges REAL DEFAULT 0,
		other_charges REAL DEFAULT 0,
		total_amount REAL DEFAULT 0,
		amount_paid REAL DEFAULT 0,
		balance_due REAL DEFAULT 0,
		payment_status TEXT DEFAULT 'Pending',
		payment_method TEXT,
		FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id INTEGER PRIMARY KEY AUTOINCREMENT,
		bill_no INTEGER,
		amount REAL,
		payment_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		payment_method TEXT,
		FOREIGN KEY (bill_no) REFERENCES bills(bill_no) ON DELETE CASCADE
	)`,
}

// The two fixed accounts every installation starts with.
const seedUsers = `INSERT OR IGNORE INTO users (username, password, role)
	VALUES ('admin', 'admin123', 'admin'),
	       ('staff', 'staff123', 'staff')`

// Init creates the schema if absent and seeds the default user accounts.
// Safe to call on every startup.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.Handle().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if _, err := s.Handle().ExecContext(ctx, seedUsers); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

// Package integration exercises the services against a real store file.
package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hbill/hbill/internal/domain/billing"
	"github.com/hbill/hbill/internal/domain/identity"
	"github.com/hbill/hbill/internal/domain/patient"
	"github.com/hbill/hbill/internal/domain/reporting"
	"github.com/hbill/hbill/internal/platform/db"
	"github.com/hbill/hbill/internal/platform/export"
)

type env struct {
	store    *db.Store
	users    *identity.Service
	patients *patient.Service
	bills    *billing.Service
	reports  *reporting.Service
	exporter *export.Exporter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	store, err := db.Open(ctx, filepath.Join(t.TempDir(), "hospital.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := zerolog.Nop()
	patients := patient.NewService(patient.NewRepository(store), log)
	return &env{
		store:    store,
		users:    identity.NewService(identity.NewRepository(store), log),
		patients: patients,
		bills: billing.NewService(
			billing.NewRepository(store),
			billing.NewPaymentRepository(store),
			patients,
			store,
			log,
		),
		reports:  reporting.NewService(reporting.NewRepository(store), log),
		exporter: export.New(store, t.TempDir(), log),
	}
}

func (e *env) addPatient(t *testing.T, name string, in patient.AddInput) int64 {
	t.Helper()
	in.Name = name
	id, err := e.patients.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("add patient %s: %v", name, err)
	}
	return id
}

func (e *env) generateBill(t *testing.T, in billing.GenerateInput) *billing.Bill {
	t.Helper()
	b, err := e.bills.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("generate bill: %v", err)
	}
	return b
}

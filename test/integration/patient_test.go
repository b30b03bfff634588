package integration

import (
	"context"
	"testing"

	"github.com/hbill/hbill/internal/domain/billing"
	"github.com/hbill/hbill/internal/domain/patient"
	"github.com/hbill/hbill/internal/platform/apperr"
)

func TestLogin_SeededUsers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	sess, err := e.users.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !sess.IsAdmin() {
		t.Errorf("admin session should be admin, got role %q", sess.Role)
	}

	if _, err := e.users.Login(ctx, "admin", "wrong"); !apperr.IsValidation(err) {
		t.Fatalf("bad password: expected validation error, got %v", err)
	}

	staff, err := e.users.Login(ctx, "staff", "staff123")
	if err != nil {
		t.Fatalf("staff login: %v", err)
	}
	if staff.IsAdmin() {
		t.Error("staff session must not be admin")
	}
}

func TestPatient_UpdateBlankFieldsKeepValues(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.addPatient(t, "Jane Doe", patient.AddInput{
		Age: "54", Gender: "Female", Contact: "555-0101", Disease: "Flu",
	})

	err := e.patients.UpdateFields(ctx, id, patient.Update{Disease: "Pneumonia"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	p, err := e.patients.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Disease == nil || *p.Disease != "Pneumonia" {
		t.Errorf("disease = %v, want Pneumonia", p.Disease)
	}
	if p.Name != "Jane Doe" || p.Age == nil || *p.Age != 54 {
		t.Errorf("blank fields must keep stored values: %+v", p)
	}
	if p.Contact == nil || *p.Contact != "555-0101" {
		t.Errorf("contact changed unexpectedly: %v", p.Contact)
	}
}

func TestPatient_SearchByEachCriterion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	jane := e.addPatient(t, "Jane Doe", patient.AddInput{Contact: "555-0101"})
	e.addPatient(t, "John Smith", patient.AddInput{Contact: "555-0202"})

	byName, err := e.patients.Find(ctx, patient.ByName, "jane")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != jane {
		t.Fatalf("find by name: got %+v", byName)
	}

	byContact, err := e.patients.Find(ctx, patient.ByContact, "0202")
	if err != nil {
		t.Fatalf("find by contact: %v", err)
	}
	if len(byContact) != 1 || byContact[0].Name != "John Smith" {
		t.Fatalf("find by contact: got %+v", byContact)
	}

	byID, err := e.patients.Find(ctx, patient.ByID, "1")
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != 1 {
		t.Fatalf("find by id: got %+v", byID)
	}
}

func TestPatient_DeleteCascadesToBillsAndPayments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	id := e.addPatient(t, "Jane Doe", patient.AddInput{})
	b := e.generateBill(t, billing.GenerateInput{PatientID: id, RoomCharges: "1000"})
	if _, err := e.bills.ApplyPayment(ctx, b.BillNo, 400, "Cash"); err != nil {
		t.Fatalf("pay: %v", err)
	}

	if err := e.patients.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := e.patients.Get(ctx, id); !apperr.IsNotFound(err) {
		t.Fatalf("patient should be gone, got %v", err)
	}
	if _, err := e.bills.Get(ctx, b.BillNo); !apperr.IsNotFound(err) {
		t.Fatalf("bill should cascade away, got %v", err)
	}

	var n int
	err := e.store.Handle().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE bill_no = ?`, b.BillNo).Scan(&n)
	if err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if n != 0 {
		t.Fatalf("payments should cascade away, %d left", n)
	}
}

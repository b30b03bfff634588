package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationf(t *testing.T) {
	err := Validationf("age must be a non-negative integer, got %q", "-3")
	if !IsValidation(err) {
		t.Fatal("expected validation error")
	}
	if IsNotFound(err) || IsStorage(err) {
		t.Fatal("validation error matched another category")
	}
	want := `age must be a non-negative integer, got "-3"`
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("patient", 42)
	if !IsNotFound(err) {
		t.Fatal("expected not-found error")
	}
	if err.Error() != "patient 42 not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	// Category survives wrapping.
	wrapped := fmt.Errorf("delete patient: %w", err)
	if !IsNotFound(wrapped) {
		t.Fatal("wrapped not-found error lost its category")
	}
}

func TestStorage(t *testing.T) {
	if Storage("insert bill", nil) != nil {
		t.Fatal("Storage(nil) should be nil")
	}

	cause := errors.New("database is locked")
	err := Storage("insert bill", cause)
	if !IsStorage(err) {
		t.Fatal("expected storage error")
	}
	if !errors.Is(err, cause) {
		t.Fatal("storage error does not unwrap to its cause")
	}
	if err.Error() != "insert bill: database is locked" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

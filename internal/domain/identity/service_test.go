package identity

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hbill/hbill/internal/platform/apperr"
)

// -- Mock Repository --

type mockUserRepo struct {
	items map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{items: map[string]*User{
		"admin": {ID: 1, Username: "admin", Password: "admin123", Role: "admin"},
		"staff": {ID: 2, Username: "staff", Password: "staff123", Role: "staff"},
	}}
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.items[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, nil
}

// -- Tests --

func TestLogin_Success(t *testing.T) {
	svc := NewService(newMockUserRepo(), zerolog.Nop())

	sess, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Username != "admin" || sess.Role != "admin" {
		t.Fatalf("session = %+v", sess)
	}
	if !sess.IsAdmin() {
		t.Error("expected admin session")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(newMockUserRepo(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "staff", "nope")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewService(newMockUserRepo(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "ghost", "admin123")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_EmptyInput(t *testing.T) {
	svc := NewService(newMockUserRepo(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "admin123"); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for empty username, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin", ""); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}
}

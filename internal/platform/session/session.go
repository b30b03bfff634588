// Package session carries the logged-in clerk's identity as an explicit
// value passed to operations, rather than process-wide state.
package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	StartedAt time.Time `json:"started_at"`
}

// New starts a session for an authenticated user.
func New(username, role string) *Session {
	return &Session{
		ID:        uuid.New(),
		Username:  username,
		Role:      role,
		StartedAt: time.Now(),
	}
}

// IsAdmin reports whether the session belongs to an admin account.
func (s *Session) IsAdmin() bool { return s.Role == RoleAdmin }

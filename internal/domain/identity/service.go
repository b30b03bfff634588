package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hbill/hbill/internal/platform/apperr"
	"github.com/hbill/hbill/internal/platform/session"
)

type Service struct {
	users Repository
	log   zerolog.Logger
}

func NewService(users Repository, log zerolog.Logger) *Service {
	return &Service{users: users, log: log}
}

// Login checks the supplied credentials against the users table and starts
// a session for the matching account. The comparison is plain equality,
// matching the seeded plaintext accounts.
func (s *Service) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if username == "" || password == "" {
		return nil, apperr.Validationf("username and password are required")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Validationf("invalid username or password")
	}
	if err != nil {
		return nil, apperr.Storage("lookup user", err)
	}

	if u.Password != password {
		return nil, apperr.Validationf("invalid username or password")
	}

	sess := session.New(u.Username, u.Role)
	s.log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user logged in")
	return sess, nil
}

// List returns all accounts ordered by username.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}
	return users, nil
}

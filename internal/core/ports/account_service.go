package ports

import (
	"context"

	"github.com/graphflix/account-api/internal/core/domain"
)

// AccountService exposes registration and authentication.
//
// Authenticate deliberately collapses "no such user" and "wrong password"
// into the single ok=false outcome so callers cannot probe which emails are
// registered. Only infrastructure failures surface as err.
type AccountService interface {
	Register(ctx context.Context, email, password, name string) (*domain.AuthenticatedUser, error)
	Authenticate(ctx context.Context, email, password string) (*domain.AuthenticatedUser, bool, error)
}

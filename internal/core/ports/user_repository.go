package ports

import (
	"context"

	"github.com/graphflix/account-api/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
//
// Implementations own the store session lifecycle: every call acquires its
// session, runs a single read or write transaction, and releases the session
// before returning. Callers only ever receive materialized records, never a
// live cursor. A Create that collides with the email uniqueness constraint
// returns domain.ErrEmailTaken; a lookup with no match returns
// domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.StoredUser) (*domain.StoredUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.StoredUser, error)
	FindByID(ctx context.Context, userID string) (*domain.StoredUser, error)
}

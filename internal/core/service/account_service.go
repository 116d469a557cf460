package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/graphflix/account-api/internal/api/metrics"
	"github.com/graphflix/account-api/internal/core/domain"
	"github.com/graphflix/account-api/internal/core/ports"
)

const emailTakenDetail = "Email address already taken"

// AccountService implements registration and authentication. It holds an
// immutable repository handle plus signing/hashing parameters; it is safe for
// concurrent use.
type AccountService struct {
	repo       ports.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAccountService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, bcryptCost: bcryptCost}
}

// Register hashes the password, persists a new user in a single write
// transaction, and returns the safe fields merged with a signed token.
// A uniqueness collision on email comes back as a *domain.ValidationError;
// every other failure propagates unchanged.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*domain.AuthenticatedUser, error) {
	if email == "" || password == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.StoredUser{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.NewValidationError("could not register account", "email", emailTakenDetail)
		}
		return nil, err
	}

	return s.withToken(created.Public())
}

// Authenticate looks up the user by email and verifies the password against
// the stored hash. Unknown email and wrong password are both the ok=false
// outcome; the caller cannot tell which occurred. The repository releases its
// read session before the hash comparison runs, so a slow bcrypt check never
// pins a store session.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.AuthenticatedUser, bool, error) {
	if email == "" || password == "" {
		return nil, false, nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	mismatch := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil
	metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	if mismatch {
		return nil, false, nil
	}

	auth, err := s.withToken(user.Public())
	if err != nil {
		return nil, false, err
	}
	return auth, true, nil
}

func (s *AccountService) withToken(user domain.PublicUser) (*domain.AuthenticatedUser, error) {
	token, err := SignClaims(domain.UserToClaims(user), s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.AuthenticatedUser{PublicUser: user, Token: token}, nil
}

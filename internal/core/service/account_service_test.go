package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/graphflix/account-api/internal/api/metrics"
	"github.com/graphflix/account-api/internal/core/domain"
)

type stubUserRepo struct {
	byEmail map[string]*domain.StoredUser
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.StoredUser)}
}

func cloneUser(u *domain.StoredUser) *domain.StoredUser {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.StoredUser) (*domain.StoredUser, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.byEmail[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.StoredUser, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, userID string) (*domain.StoredUser, error) {
	for _, u := range r.byEmail {
		if u.UserID == userID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	auth, err := svc.Register(context.Background(), "a@x.com", "secret123", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if auth.UserID == "" {
		t.Fatalf("expected a generated userId")
	}
	if auth.Email != "a@x.com" || auth.Name != "Alice" {
		t.Fatalf("unexpected user fields: %+v", auth.PublicUser)
	}
	if auth.Token == "" {
		t.Fatalf("expected a signed token")
	}

	stored := repo.byEmail["a@x.com"]
	if stored.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Register_TokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	auth, err := svc.Register(context.Background(), "a@x.com", "secret123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := ParseToken(auth.Token, "secret")
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Sub != auth.UserID || claims.UserID != auth.UserID {
		t.Fatalf("expected sub and userId %q, got sub=%q userId=%q", auth.UserID, claims.Sub, claims.UserID)
	}
	if claims.Name != "Alice" {
		t.Fatalf("expected name Alice, got %q", claims.Name)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "a@x.com", "secret123", "Alice"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "a@x.com", "other456", "Mallory")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["email"] != "Email address already taken" {
		t.Fatalf("unexpected field message: %+v", ve.Fields)
	}
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "", "pass", "Bob"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "b@x.com", "", "Bob"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "b@x.com", "pass", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountService_RegisterThenAuthenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	registered, err := svc.Register(context.Background(), "a@x.com", "secret123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	auth, ok, err := svc.Authenticate(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected successful authentication")
	}
	if auth.UserID != registered.UserID || auth.Email != "a@x.com" || auth.Name != "Alice" {
		t.Fatalf("authenticated user does not match registration: %+v", auth.PublicUser)
	}
	if auth.Token == "" {
		t.Fatalf("expected a signed token")
	}
}

// Wrong password and unknown email must be observably identical.
func TestAccountService_Authenticate_BadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	if _, err := svc.Register(context.Background(), "a@x.com", "secret123", "Alice"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for name, creds := range map[string][2]string{
		"wrong password": {"a@x.com", "wrong"},
		"unknown email":  {"nouser@x.com", "x"},
	} {
		auth, ok, err := svc.Authenticate(context.Background(), creds[0], creds[1])
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if ok || auth != nil {
			t.Fatalf("%s: expected rejection, got %+v", name, auth)
		}
	}
}

func TestAccountService_PasswordHashDurationObserved(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, "secret", time.Hour, bcrypt.MinCost)

	hashBefore := testutil.CollectAndCount(metrics.PasswordHashDuration, "account_password_hash_duration_seconds")

	if _, err := svc.Register(context.Background(), "m@x.com", "secret123", "Mia"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, ok, err := svc.Authenticate(context.Background(), "m@x.com", "secret123"); err != nil || !ok {
		t.Fatalf("authenticate failed: ok=%v err=%v", ok, err)
	}

	// One series per op label once both paths ran.
	hashAfter := testutil.CollectAndCount(metrics.PasswordHashDuration, "account_password_hash_duration_seconds")
	if hashAfter < 2 || hashAfter < hashBefore {
		t.Fatalf("expected hash and verify durations to be observed, got %d series", hashAfter)
	}
}

type failingRepo struct {
	stubUserRepo
	err error
}

func (r *failingRepo) FindByEmail(context.Context, string) (*domain.StoredUser, error) {
	return nil, r.err
}

func TestAccountService_Authenticate_StoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewAccountService(&failingRepo{err: boom}, "secret", time.Hour, bcrypt.MinCost)

	_, ok, err := svc.Authenticate(context.Background(), "a@x.com", "secret123")
	if ok {
		t.Fatalf("expected failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate unchanged, got %v", err)
	}
}

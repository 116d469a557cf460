package domain

import "testing"

func TestUserToClaims(t *testing.T) {
	u := PublicUser{UserID: "u-1", Email: "a@x.com", Name: "Alice"}

	c := UserToClaims(u)
	if c.Sub != "u-1" || c.UserID != "u-1" {
		t.Fatalf("expected userId duplicated into sub, got %+v", c)
	}
	if c.Name != "Alice" {
		t.Fatalf("expected name carried over, got %q", c.Name)
	}
}

func TestClaimsRoundTrip(t *testing.T) {
	u := PublicUser{UserID: "u-1", Name: "Alice"}

	got := ClaimsToUser(UserToClaims(u))
	if got.UserID != u.UserID || got.Name != u.Name {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestClaimsToUser_SubWins(t *testing.T) {
	c := Claims{Sub: "subject-id", UserID: "other", Name: "Alice"}

	if got := ClaimsToUser(c); got.UserID != "subject-id" {
		t.Fatalf("expected userId sourced from sub, got %q", got.UserID)
	}
}

func TestStoredUserPublic(t *testing.T) {
	s := StoredUser{UserID: "u-1", Email: "a@x.com", Name: "Alice", PasswordHash: "$2a$..."}

	p := s.Public()
	if p.UserID != "u-1" || p.Email != "a@x.com" || p.Name != "Alice" {
		t.Fatalf("unexpected public fields: %+v", p)
	}
}

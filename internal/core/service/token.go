package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/graphflix/account-api/internal/core/domain"
)

// TokenClaims is the wire shape of a session token: the registered subject
// carries the userId, and the userId/name fields are mirrored as flat claims.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// SignClaims signs identity claims into an HS256 token valid for ttl.
func SignClaims(claims domain.Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	tc := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: claims.UserID,
		Name:   claims.Name,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies an HS256 token and returns the decoded identity claims.
// Any signature, expiry, or algorithm mismatch is an error.
func ParseToken(token, secret string) (domain.Claims, error) {
	var tc TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return domain.Claims{}, err
	}
	if !parsed.Valid {
		return domain.Claims{}, jwt.ErrTokenInvalidClaims
	}

	return domain.Claims{Sub: tc.Subject, UserID: tc.UserID, Name: tc.Name}, nil
}

package domain

import "errors"

var ErrEmailTaken = errors.New("email address already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidInput = errors.New("missing required fields")

// StoredUser is the full persisted record, password hash included. It never
// crosses the API boundary: handlers and responses only ever see PublicUser.
type StoredUser struct {
	UserID       string
	Email        string
	Name         string
	PasswordHash string
}

// Public strips the credential material. This is the only way a StoredUser
// becomes externally visible.
func (u *StoredUser) Public() PublicUser {
	return PublicUser{
		UserID: u.UserID,
		Email:  u.Email,
		Name:   u.Name,
	}
}

// PublicUser holds the safe properties of a user account.
type PublicUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name"`
}

// AuthenticatedUser is the register/login result: the safe properties merged
// with a freshly signed token.
type AuthenticatedUser struct {
	PublicUser
	Token string `json:"token"`
}

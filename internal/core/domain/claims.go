package domain

// Claims is the minimal identity payload embedded in a signed token. The
// userId is duplicated into sub because token consumers expect the standard
// subject field.
type Claims struct {
	Sub    string `json:"sub"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// UserToClaims projects the safe fields of a user into token claims.
func UserToClaims(u PublicUser) Claims {
	return Claims{
		Sub:    u.UserID,
		UserID: u.UserID,
		Name:   u.Name,
	}
}

// ClaimsToUser rebuilds a user identity from decoded token claims, sourcing
// the userId from sub. Token integrity is the verifier's job; by the time
// claims reach this function they are trusted.
func ClaimsToUser(c Claims) PublicUser {
	return PublicUser{
		UserID: c.Sub,
		Name:   c.Name,
	}
}

package entity

import "errors"

var (
	// ErrInvalidCredentials is returned when an email/password pair does not match an active user.
	// Unknown emails and wrong passwords both yield this error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a bearer token is missing, invalid, expired
	// or does not resolve to an active user.
	ErrUnauthorized = errors.New("unauthorized")
)

// TokenPair holds the signed credentials issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

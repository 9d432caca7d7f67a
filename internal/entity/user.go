package entity

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when no active user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering an email that already belongs to an active user.
	ErrEmailExists = errors.New("email already exists")
)

// User represents an account that can own shortened URLs.
type User struct {
	ID             int64
	ExternalID     string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

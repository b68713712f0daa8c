package domain

import (
	"strings"
	"time"
)

// User represents a registered account in the domain model.
// The password hash is opaque to everything except the auth package
// and is never serialized outward.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// FullName returns the user's display name, falling back to the username
// when no name parts are set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// IsValid checks if the user has valid data.
func (u User) IsValid() bool {
	return u.Username != "" && u.Email != "" && u.PasswordHash != ""
}

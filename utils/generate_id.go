package utils

import "github.com/google/uuid"

// NewID returns a fresh identifier for users, notes and sessions.
func NewID() string {
	return uuid.NewString()
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshRegistry tracks refresh tokens that may still be exchanged for
// access tokens. A token is usable only while it is registered.
type RefreshRegistry interface {
	Register(token string, userID uuid.UUID)
	IsActive(token string) bool
	// Revoke removes the token and returns the entry it was registered with.
	// The bool is false when the token was not registered.
	Revoke(token string) (RefreshToken, bool)
	Len() int
}

// RefreshToken is the registry entry for an issued refresh token.
type RefreshToken struct {
	UserID   uuid.UUID
	IssuedAt time.Time
}

// Package memory holds process-local stores.
package memory

import (
	"crypto/sha256"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tokenauth/internal/model"
)

var _ model.RefreshRegistry = (*RefreshRegistry)(nil)

// RefreshRegistry is the set of refresh tokens that are currently allowed to
// mint access tokens. Entries live until revoked or until the process exits.
// Tokens are keyed by their SHA-256 digest so raw tokens are not retained.
type RefreshRegistry struct {
	mu      sync.RWMutex
	entries map[[sha256.Size]byte]model.RefreshToken
	now     func() time.Time
}

// NewRefreshRegistry creates an empty registry.
func NewRefreshRegistry() *RefreshRegistry {
	return &RefreshRegistry{
		entries: make(map[[sha256.Size]byte]model.RefreshToken),
		now:     time.Now,
	}
}

// Register adds token to the registry. Registering an existing token
// refreshes its entry.
func (r *RefreshRegistry) Register(token string, userID uuid.UUID) {
	key := hashRefresh(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = model.RefreshToken{UserID: userID, IssuedAt: r.now()}
}

// IsActive reports whether token is registered.
func (r *RefreshRegistry) IsActive(token string) bool {
	key := hashRefresh(token)

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key]
	return ok
}

// Revoke removes token and returns its entry. Concurrent revocations of the
// same token succeed exactly once.
func (r *RefreshRegistry) Revoke(token string) (model.RefreshToken, bool) {
	key := hashRefresh(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return model.RefreshToken{}, false
	}
	delete(r.entries, key)
	return entry, true
}

// Len returns the number of registered tokens.
func (r *RefreshRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

func hashRefresh(token string) [sha256.Size]byte {
	return sha256.Sum256([]byte(token))
}

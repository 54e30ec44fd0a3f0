package session

import (
	"context"
	"time"
)

// Store is one token persistence backend. Every call may fail independently of
// the other tiers; implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value under key. found is false when the key is absent or expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set writes value under key. A zero expiresAt means no expiry.
	Set(ctx context.Context, key, value string, expiresAt time.Time) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Lifetime classifies how long a tier keeps its data.
type Lifetime int

const (
	// ShortLived tiers live as long as the process or a shared cache entry.
	ShortLived Lifetime = iota
	// LongLived tiers survive restarts.
	LongLived
)

func (l Lifetime) String() string {
	if l == LongLived {
		return "long-lived"
	}
	return "short-lived"
}

// Tier is a named Store with a lifetime class.
type Tier struct {
	Name     string
	Lifetime Lifetime
	Store    Store
}

// Keys names the storage keys used for the token.
type Keys struct {
	// Canonical is read and written.
	Canonical string
	// Legacy aliases are only read; a hit is migrated to Canonical.
	Legacy []string
}

// DefaultKeys returns the keys used by earlier dashboard clients.
func DefaultKeys() Keys {
	return Keys{
		Canonical: "auth_token",
		Legacy:    []string{"authToken", "token"},
	}
}

func (k Keys) all() []string {
	return append([]string{k.Canonical}, k.Legacy...)
}

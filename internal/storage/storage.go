// Package storage defines the persistence boundary of the gateway: user
// preferences keyed by user ID and an append-only usage log. The orchestration
// core depends only on these interfaces, never on a concrete store.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no preferences are stored for a user.
var ErrNotFound = errors.New("not found")

// Preferences is the stored preference object for one user. The gateway
// treats it as opaque JSON.
type Preferences map[string]any

// PreferenceStore reads and writes preferences by user ID.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (Preferences, error)
	PutPreferences(ctx context.Context, userID string, prefs Preferences) error
}

// UsageEntry records one handled operation.
type UsageEntry struct {
	ID        string
	UserID    string
	Operation string
	Status    string
	CreatedAt time.Time
}

// UsageStore appends usage entries. Appends are advisory; a failed append
// must never fail the request that produced it.
type UsageStore interface {
	AppendUsage(ctx context.Context, entry UsageEntry) error
}

// Store is the full persistence surface the gateway wires at startup.
type Store interface {
	PreferenceStore
	UsageStore
}

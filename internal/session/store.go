// Package session implements server-side login sessions. A session is an
// opaque token mapped to a store record; the token travels in a signed
// HTTP-only cookie and the record's existence is what authorizes requests.
package session

import (
	"context"
	"time"

	"vitrin/internal/models"
)

// TTL is the absolute session lifetime.
const TTL = 7 * 24 * time.Hour

// Store persists session records. Implementations must treat expired records
// as absent on read regardless of when they are physically removed.
//
// GormStore is the durable implementation used in production so that session
// validity survives process restarts and is shared by scaled-out instances.
// MemoryStore backs development and tests.
type Store interface {
	// Create persists a new session record.
	Create(ctx context.Context, s *models.Session) error
	// Get returns the session for token, or (nil, nil) when the token is
	// unknown or the session has expired.
	Get(ctx context.Context, token string) (*models.Session, error)
	// Delete removes the session record. Deleting an absent token is not an
	// error; logout must be idempotent.
	Delete(ctx context.Context, token string) error
}

// Package revokedtokens holds the invalidation set: identifiers of tokens
// that were logged out before their natural expiry. Memory, PostgreSQL and
// Redis backends are provided.
package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository records and looks up revoked token identifiers. All
// implementations are safe for concurrent use, and a successful Add is
// visible to a subsequent Contains for the same identifier.
type Repository interface {
	// Add records the token. Adding an identifier that is already present
	// is not an error and keeps the original entry.
	Add(ctx context.Context, token models.RevokedToken) error

	// Contains reports whether jti has been revoked.
	Contains(ctx context.Context, jti string) (bool, error)

	// DeleteExpired drops entries whose token expired at or before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

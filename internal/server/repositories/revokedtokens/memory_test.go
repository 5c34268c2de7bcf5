package revokedtokens

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revoked(jti string, at time.Time, ttl time.Duration) models.RevokedToken {
	return models.RevokedToken{JTI: jti, InvalidatedAt: at, ExpiresAt: at.Add(ttl)}
}

func TestMemoryRepository_AddContains(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Now()

	ok, err := r.Contains(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Add(ctx, revoked("a", now, time.Hour)))

	ok, err = r.Contains(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRepository_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	first := time.Now()

	require.NoError(t, r.Add(ctx, revoked("a", first, time.Hour)))
	require.NoError(t, r.Add(ctx, revoked("a", first.Add(time.Minute), time.Hour)))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, first, r.entries["a"].InvalidatedAt)
}

func TestMemoryRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Now()

	require.NoError(t, r.Add(ctx, revoked("old", now.Add(-2*time.Hour), time.Hour)))
	require.NoError(t, r.Add(ctx, revoked("edge", now.Add(-time.Hour), time.Hour)))
	require.NoError(t, r.Add(ctx, revoked("live", now, time.Hour)))

	n, err := r.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, _ := r.Contains(ctx, "live")
	assert.True(t, ok)
	ok, _ = r.Contains(ctx, "old")
	assert.False(t, ok)
}

func TestMemoryRepository_ConcurrentAddAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jti := fmt.Sprintf("t-%d", i)
			require.NoError(t, r.Add(ctx, revoked(jti, now, time.Hour)))
			ok, err := r.Contains(ctx, jti)
			assert.NoError(t, err)
			assert.True(t, ok, "read-your-writes violated for %s", jti)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 64, r.Len())
}

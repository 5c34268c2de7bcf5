package revokedtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]models.RevokedToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]models.RevokedToken)}
}

func (r *MemoryRepository) Add(_ context.Context, token models.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[token.JTI]; !ok {
		r.entries[token.JTI] = token
	}
	return nil
}

func (r *MemoryRepository) Contains(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[jti]
	return ok, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for jti, e := range r.entries {
		if !e.ExpiresAt.After(now) {
			delete(r.entries, jti)
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"prospection-agent/domain"
)

// HistoryRepositoryMemory keeps session histories in an expiring LRU. A
// session disappears once it has been idle for ttl or when it is the least
// recently used one and the cache is full.
type HistoryRepositoryMemory struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, []domain.HistoryEntry]
}

// NewHistoryRepositoryMemory creates a store holding at most size sessions.
func NewHistoryRepositoryMemory(size int, ttl time.Duration) *HistoryRepositoryMemory {
	return &HistoryRepositoryMemory{
		lru: expirable.NewLRU[string, []domain.HistoryEntry](size, nil, ttl),
	}
}

// Append adds entry to the end of the session's history.
func (r *HistoryRepositoryMemory) Append(
	_ context.Context,
	sessionID string,
	entry domain.HistoryEntry,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, _ := r.lru.Get(sessionID)
	next := make([]domain.HistoryEntry, len(prev), len(prev)+1)
	copy(next, prev)
	r.lru.Add(sessionID, append(next, entry))
	return nil
}

// List returns a copy of the session's history.
func (r *HistoryRepositoryMemory) List(
	_ context.Context,
	sessionID string,
) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.lru.Get(sessionID)
	if !ok {
		return []domain.HistoryEntry{}, nil
	}
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Sessions returns the number of live sessions.
func (r *HistoryRepositoryMemory) Sessions() int {
	return r.lru.Len()
}

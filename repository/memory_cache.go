package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.lru.Add(key, value)
	return nil
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospection-agent/domain"
)

func entry(product string, value float64) domain.HistoryEntry {
	return domain.HistoryEntry{
		ProductName: product,
		TotalVolume: value / 25,
		TotalValue:  value,
		ComputedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestHistoryRepositoryMemory_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepositoryMemory(10, time.Hour)

	require.NoError(t, repo.Append(ctx, "s1", entry("Scoriflex", 2500)))
	require.NoError(t, repo.Append(ctx, "s1", entry("Irrigafix", 1000)))
	require.NoError(t, repo.Append(ctx, "s1", entry("Scoriflex", 500)))

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Scoriflex", "Irrigafix", "Scoriflex"},
		[]string{got[0].ProductName, got[1].ProductName, got[2].ProductName})
}

func TestHistoryRepositoryMemory_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepositoryMemory(10, time.Hour)

	require.NoError(t, repo.Append(ctx, "a", entry("Scoriflex", 2500)))

	got, err := repo.List(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, 1, repo.Sessions())
}

func TestHistoryRepositoryMemory_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepositoryMemory(10, time.Hour)
	require.NoError(t, repo.Append(ctx, "s1", entry("Scoriflex", 2500)))

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	got[0].ProductName = "changed"

	again, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Scoriflex", again[0].ProductName)
}

func TestHistoryRepositoryMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepositoryMemory(2, time.Hour)

	require.NoError(t, repo.Append(ctx, "a", entry("A", 1)))
	require.NoError(t, repo.Append(ctx, "b", entry("B", 1)))
	require.NoError(t, repo.Append(ctx, "c", entry("C", 1)))

	got, err := repo.List(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, repo.Sessions())
}

func TestHistoryRepositoryMemory_ExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepositoryMemory(10, 50*time.Millisecond)
	require.NoError(t, repo.Append(ctx, "s1", entry("Scoriflex", 2500)))

	assert.Eventually(t, func() bool {
		got, err := repo.List(ctx, "s1")
		return err == nil && len(got) == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4, time.Hour)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v"))
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

package repository

import (
	"context"

	"prospection-agent/domain"
)

// HistoryRepository stores the append-only calculation history of each
// session. Entries come back in insertion order and are never rewritten.
type HistoryRepository interface {
	Append(ctx context.Context, sessionID string, entry domain.HistoryEntry) error
	List(ctx context.Context, sessionID string) ([]domain.HistoryEntry, error)
}

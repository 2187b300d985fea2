package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"prospection-agent/domain"
	"prospection-agent/errs"
)

// RedisHistoryRepository keeps each session's history in a Redis list so
// several API instances can serve the same session.
type RedisHistoryRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisHistoryRepository(client *redis.Client, prefix string, ttl time.Duration) *RedisHistoryRepository {
	return &RedisHistoryRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisHistoryRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

// Append pushes the entry and refreshes the session TTL in one round trip.
func (r *RedisHistoryRepository) Append(
	ctx context.Context,
	sessionID string,
	entry domain.HistoryEntry,
) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return errs.Wrap(err, errs.CodeInternal, "encode history entry")
	}

	key := r.key(sessionID)
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, payload)
		p.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return errs.Wrap(err, errs.CodeUnavailable, "history store unavailable")
	}
	return nil
}

func (r *RedisHistoryRepository) List(
	ctx context.Context,
	sessionID string,
) ([]domain.HistoryEntry, error) {
	raw, err := r.client.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeUnavailable, "history store unavailable")
	}

	out := make([]domain.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var e domain.HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errs.Wrap(err, errs.CodeInternal, "decode history entry")
		}
		out = append(out, e)
	}
	return out, nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// contextWindow is how many prior transcript lines feed the next extraction.
const contextWindow = 5

// ContextService keeps a rolling window of recent conversation lines per user
// in Redis, so follow-up extractions see what was said before even when the
// caller sends no context of its own. Fully optional: a nil service (no
// REDIS_URL) disables recall and the orchestrator uses request context only.
type ContextService struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewContextService wraps an established redis client. rdb may be nil.
func NewContextService(rdb *redis.Client) *ContextService {
	if rdb == nil {
		return nil
	}
	return &ContextService{rdb: rdb, ttl: 24 * time.Hour}
}

func contextKey(userID string) string {
	return fmt.Sprintf("repo:context:%s", userID)
}

// Recent returns up to the last contextWindow transcript lines for the user,
// oldest first. Errors degrade to "no context" - recall is best-effort.
func (s *ContextService) Recent(ctx context.Context, userID string) []string {
	if s == nil {
		return nil
	}
	lines, err := s.rdb.LRange(ctx, contextKey(userID), 0, contextWindow-1).Result()
	if err != nil {
		log.Printf("[context] Recall failed for %s: %v", userID, err)
		return nil
	}
	// Stored newest-first; callers want conversation order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}

// Remember pushes a transcript onto the user's rolling window, trimming it to
// contextWindow entries. Best-effort: failures are logged, never surfaced.
func (s *ContextService) Remember(ctx context.Context, userID, transcript string) {
	if s == nil || transcript == "" {
		return
	}
	key := contextKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, transcript)
	pipe.LTrim(ctx, key, 0, contextWindow-1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[context] Remember failed for %s: %v", userID, err)
	}
}

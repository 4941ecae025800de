package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewTracker keeps the per-session set of already viewed advertisements in
// Redis, so repeat views inside one session are not counted twice.
type ViewTracker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewTracker(rdb *redis.Client) *ViewTracker {
	return &ViewTracker{rdb: rdb, ttl: 24 * time.Hour}
}

func viewedKey(sessionID string) string {
	return fmt.Sprintf("viewed_ads:%s", sessionID)
}

// MarkViewed records the view and reports whether this session saw the
// advertisement for the first time. SADD returning 1 means the id was not
// in the set, which makes check-and-set a single round trip.
func (t *ViewTracker) MarkViewed(ctx context.Context, sessionID string, adID int) (bool, error) {
	key := viewedKey(sessionID)
	added, err := t.rdb.SAdd(ctx, key, adID).Result()
	if err != nil {
		return false, err
	}
	if err := t.rdb.Expire(ctx, key, t.ttl).Err(); err != nil {
		return false, err
	}
	return added == 1, nil
}

package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lodging_backend/internal/feature/reservation/usecase"
)

const (
	defaultEventPrefix = "webhook:event"
	defaultEventTTL    = 72 * time.Hour
)

// eventGuardRedis は処理済みのWebhookイベントIDをRedisに記録します。
// client が nil の場合は常に未処理として扱います。
type eventGuardRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.EventGuard = (*eventGuardRedis)(nil)

// NewEventGuardRedis はeventGuardRedisの新しいインスタンスを生成します。
// ttl は決済プロバイダーの再送期間より長くしてください。
func NewEventGuardRedis(client *redis.Client, prefix string, ttl time.Duration) *eventGuardRedis {
	if prefix == "" {
		prefix = defaultEventPrefix
	}
	if ttl <= 0 {
		ttl = defaultEventTTL
	}
	return &eventGuardRedis{client: client, prefix: prefix, ttl: ttl}
}

func (g *eventGuardRedis) key(eventID string) string {
	return fmt.Sprintf("%s:%s", g.prefix, eventID)
}

// Claim は SET NX でイベントIDを記録し、初回だけ true を返します。
func (g *eventGuardRedis) Claim(ctx context.Context, eventID string) (bool, error) {
	if g.client == nil || eventID == "" {
		return true, nil
	}
	ok, err := g.client.SetNX(ctx, g.key(eventID), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim webhook event %s: %w", eventID, err)
	}
	return ok, nil
}

func (g *eventGuardRedis) Release(ctx context.Context, eventID string) error {
	if g.client == nil || eventID == "" {
		return nil
	}
	return g.client.Del(ctx, g.key(eventID)).Err()
}

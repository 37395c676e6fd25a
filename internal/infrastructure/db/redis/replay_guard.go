package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const replayTTL = 24 * time.Hour

// ReplayGuard remembers recorded payment transaction ids so a resubmitted
// payment is rejected before it touches the store.
// Key format: payment:tx:<transaction_id>
type ReplayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayGuard creates a ReplayGuard wrapping the given Redis client.
func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client, ttl: replayTTL}
}

// Claim atomically marks the transaction as seen. It reports false when the
// id was already claimed within the TTL.
func (g *ReplayGuard) Claim(ctx context.Context, transactionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(transactionID), time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("replay claim: %w", err)
	}
	return ok, nil
}

// Release forgets a claim, used when the payment could not be stored.
func (g *ReplayGuard) Release(ctx context.Context, transactionID string) error {
	if err := g.client.Del(ctx, g.key(transactionID)).Err(); err != nil {
		return fmt.Errorf("replay release: %w", err)
	}
	return nil
}

func (g *ReplayGuard) key(transactionID string) string {
	return "payment:tx:" + transactionID
}

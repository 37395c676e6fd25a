package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestGuard(t *testing.T) (*ReplayGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReplayGuard(client), mr
}

func TestReplayGuard_ClaimOnce(t *testing.T) {
	g, mr := newTestGuard(t)
	ctx := context.Background()

	ok, err := g.Claim(ctx, "pi_123")
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}
	ok, err = g.Claim(ctx, "pi_123")
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if ok {
		t.Fatal("second claim succeeded, want replay rejected")
	}

	if !mr.Exists("payment:tx:pi_123") {
		t.Fatal("claim key not stored")
	}
	if ttl := mr.TTL("payment:tx:pi_123"); ttl != replayTTL {
		t.Errorf("ttl = %v, want %v", ttl, replayTTL)
	}
}

func TestReplayGuard_ExpiresAfterTTL(t *testing.T) {
	g, mr := newTestGuard(t)
	ctx := context.Background()

	if ok, _ := g.Claim(ctx, "pi_1"); !ok {
		t.Fatal("first claim failed")
	}
	mr.FastForward(replayTTL + time.Second)

	ok, err := g.Claim(ctx, "pi_1")
	if err != nil || !ok {
		t.Fatalf("claim after expiry: ok=%v err=%v", ok, err)
	}
}

func TestReplayGuard_Release(t *testing.T) {
	g, _ := newTestGuard(t)
	ctx := context.Background()

	if ok, _ := g.Claim(ctx, "pi_2"); !ok {
		t.Fatal("first claim failed")
	}
	if err := g.Release(ctx, "pi_2"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := g.Claim(ctx, "pi_2"); !ok {
		t.Fatal("claim after release rejected")
	}
}

func TestReplayGuard_StoreDown(t *testing.T) {
	g, mr := newTestGuard(t)
	mr.Close()

	if _, err := g.Claim(context.Background(), "pi_3"); err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected ping failure against closed server")
	}
}

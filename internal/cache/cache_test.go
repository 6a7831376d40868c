// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestServer starts an in-memory Valkey stand-in.
func newTestServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr
}

// testClient returns a client connected to a fresh miniredis.
func testClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := newTestServer(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestConnectValkey(t *testing.T) {
	mr := newTestServer(t)

	client, err := ConnectValkey(context.Background(), mr.Host(), mr.Port(), "")
	if err != nil {
		t.Fatalf("ConnectValkey: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestConnectValkey_Unreachable(t *testing.T) {
	mr := newTestServer(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	if _, err := ConnectValkey(context.Background(), host, port, ""); err == nil {
		t.Error("expected error for a closed server")
	}
}

func TestResponseCacheSetAndGet(t *testing.T) {
	client, mr := testClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "b1:/api/posts"); ok {
		t.Fatal("expected miss on empty cache")
	}

	rc.Set(ctx, "b1:/api/posts", []byte(`{"items":[]}`))

	got, ok := rc.Get(ctx, "b1:/api/posts")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != `{"items":[]}` {
		t.Errorf("got %q", got)
	}
	if !mr.Exists("api:b1:/api/posts") {
		t.Error("key should carry the api: prefix")
	}
}

func TestResponseCacheTTL(t *testing.T) {
	client, mr := testClient(t)
	rc := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	rc.Set(ctx, "k", []byte("v"))
	mr.FastForward(2 * time.Minute)

	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("entry should expire after the TTL")
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	client, mr := testClient(t)
	rc := NewResponseCache(client, 0)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		rc.Set(ctx, k, []byte(k))
	}
	if err := mr.Set("other:key", "kept"); err != nil {
		t.Fatal(err)
	}

	rc.InvalidateAll(ctx)

	for _, k := range []string{"a", "b", "c"} {
		if _, ok := rc.Get(ctx, k); ok {
			t.Errorf("key %q should be gone", k)
		}
	}
	if !mr.Exists("other:key") {
		t.Error("keys outside the prefix must survive")
	}
}

func TestNilResponseCache(t *testing.T) {
	var rc *ResponseCache
	ctx := context.Background()

	rc.Set(ctx, "k", []byte("v"))
	rc.InvalidateAll(ctx)
	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("nil cache must never hit")
	}
}

func TestKey(t *testing.T) {
	if got := Key("build", "/api/posts?page=2"); got != "build:/api/posts?page=2" {
		t.Errorf("Key() = %q", got)
	}
}

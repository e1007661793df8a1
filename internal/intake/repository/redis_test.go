package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreWithClient(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)
	session := testSession()

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mr.Exists(sessionKeyPrefix + session.ID.String()) {
		t.Fatal("expected session key in redis")
	}
	if ttl := mr.TTL(sessionKeyPrefix + session.ID.String()); ttl != time.Hour {
		t.Fatalf("expected ttl 1h, got %v", ttl)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != session.ID || got.Step != session.Step || got.Measurements.Length != 5 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Normalized != "måla väggar" {
		t.Fatalf("expected task to survive encoding, got %+v", got.Tasks)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Minute)
	session := testSession()
	_ = store.Save(ctx, session)

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestRedisStoreDeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, time.Hour)

	if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	session := testSession()
	_ = store.Save(ctx, session)
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRedisStoreRejectsCorruptValues(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)
	id := uuid.New()
	if err := mr.Set(sessionKeyPrefix+id.String(), "{not json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := store.Get(ctx, id)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestRedisOptionsTLS(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		insecure     bool
		wantTLS      bool
		wantInsecure bool
	}{
		{"plain", "redis://localhost:6379/0", false, false, false},
		{"tls verified", "rediss://cache.example.com:6380", false, true, false},
		{"tls insecure", "rediss://cache.example.com:6380", true, true, true},
		{"forced insecure on plain url", "redis://localhost:6379", true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opt, err := redisOptions(tc.url, tc.insecure)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (opt.TLSConfig != nil) != tc.wantTLS {
				t.Fatalf("expected tls %v, got %+v", tc.wantTLS, opt.TLSConfig)
			}
			if opt.TLSConfig != nil && opt.TLSConfig.InsecureSkipVerify != tc.wantInsecure {
				t.Fatalf("expected insecure %v, got %v", tc.wantInsecure, opt.TLSConfig.InsecureSkipVerify)
			}
		})
	}

	if _, err := redisOptions("not a url", false); err == nil {
		t.Fatal("expected error for invalid url")
	}
}

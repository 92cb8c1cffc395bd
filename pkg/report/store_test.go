package report

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/eventcast/pkg/errors"
	"github.com/kart-io/eventcast/pkg/session"
)

func sampleReport(id string) *session.Report {
	return &session.Report{
		SessionID: id,
		Strategy:  "parallel",
		Outcomes: []session.Outcome{
			{Platform: "blog", Status: session.StatusSucceeded, Ref: "post-1", URL: "https://blog.example.com/p/post-1"},
			{Platform: "calendar", Status: session.StatusFailed, Reason: "slow down", ErrorCode: errors.ErrRateLimited},
		},
		StartedAt:  time.Date(2026, 2, 22, 15, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 2, 22, 15, 0, 3, 0, time.UTC),
	}
}

func TestMemoryStoreSaveGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleReport("session-1")))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, sampleReport("session-1"), got)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleReport("session-1")))

	updated := sampleReport("session-1")
	updated.Outcomes = updated.Outcomes[:1]
	require.NoError(t, store.Save(ctx, updated))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, got.Outcomes, 1)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	r := sampleReport("session-1")
	require.NoError(t, store.Save(ctx, r))
	r.Outcomes[0].Ref = "mutated-after-save"

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "post-1", got.Outcomes[0].Ref)

	got.Outcomes[0].Ref = "mutated-after-get"
	again, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "post-1", again.Outcomes[0].Ref)
}

func TestRedisConfigDefaults(t *testing.T) {
	cfg := DefaultRedisConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, "eventcast:report:", cfg.KeyPrefix)
	assert.Equal(t, 30*24*time.Hour, cfg.TTL)
}

func TestRedisStoreKeying(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	s := NewRedisStoreWithClient(client, &RedisConfig{KeyPrefix: "test:reports:"})
	assert.Equal(t, "test:reports:session-1", s.key("session-1"))
	// Closing a store over an external client must leave it open.
	require.NoError(t, s.Close())

	s = NewRedisStoreWithClient(client, &RedisConfig{})
	assert.Equal(t, "eventcast:report:session-1", s.key("session-1"))
}

// TestRedisStoreRoundTrip needs a reachable Redis; it skips otherwise
// so the suite stays runnable on a bare machine.
func TestRedisStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	store := NewRedisStoreWithClient(client, &RedisConfig{
		KeyPrefix: "eventcast:test:report:",
		TTL:       time.Minute,
	})

	r := sampleReport("session-rt")
	require.NoError(t, store.Save(ctx, r))
	defer client.Del(ctx, store.key("session-rt"))

	got, err := store.Get(ctx, "session-rt")
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = store.Get(ctx, "session-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

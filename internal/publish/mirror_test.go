package publish

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/jsonx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cachekeys "pricebatch/internal/cache"
	"pricebatch/pkg/pricing"
)

type fakeCache struct {
	mu      sync.Mutex
	values  map[string]any
	expires map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]any{}, expires: map[string]time.Duration{}}
}

func (f *fakeCache) SetWithExpireCtx(_ context.Context, key string, val any, expire time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = val
	f.expires[key] = expire
	return nil
}

type failingScripter struct{}

func (failingScripter) EvalCtx(context.Context, string, []string, ...any) (any, error) {
	return nil, errors.New("redis down")
}

// gatedScripter holds writes whose document carries the gated payload until
// release is closed.
type gatedScripter struct {
	Scripter
	payload string
	held    chan struct{}
	release chan struct{}
}

func (g *gatedScripter) EvalCtx(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	if doc, _ := args[0].(string); strings.Contains(doc, `"payload":"`+g.payload+`"`) {
		close(g.held)
		<-g.release
	}
	return g.Scripter.EvalCtx(ctx, script, keys, args...)
}

var (
	ttl = cachekeys.TTLSet{Short: 10 * time.Second, Medium: time.Minute, Long: 5 * time.Minute}
	t0  = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.MustNewRedis(redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType})
}

type mirrored struct {
	ID      int64  `json:"id"`
	AsOf    string `json:"asOf"`
	Payload string `json:"payload"`
	Batch   int64  `json:"batch"`
}

func readMirrored(t *testing.T, mr *miniredis.Miniredis, id int64) mirrored {
	t.Helper()
	raw, err := mr.Get(cachekeys.PriceLatestKey(id))
	require.NoError(t, err)
	var m mirrored
	require.NoError(t, jsonx.UnmarshalFromString(raw, &m))
	return m
}

func TestNewMirror_NilWithoutRedis(t *testing.T) {
	assert.Nil(t, NewMirror(Config{Cache: newFakeCache()}))

	var m *Mirror
	assert.NoError(t, m.Publish(context.Background(), 1, []pricing.Record{{ID: 1}}))
}

func TestMirror_Publish(t *testing.T) {
	mr, rds := newRedis(t)
	fc := newFakeCache()
	m := NewMirror(Config{Redis: rds, Cache: fc, TTL: ttl})

	err := m.Publish(context.Background(), 4, []pricing.Record{
		{ID: 2000, AsOf: t0, Payload: "x"},
		{ID: 2001, AsOf: t0, Payload: "y"},
	})
	require.NoError(t, err)

	got := readMirrored(t, mr, 2000)
	assert.Equal(t, mirrored{ID: 2000, AsOf: "2024-03-01T12:00:00Z", Payload: "x", Batch: 4}, got)
	assert.Equal(t, 5*time.Minute, mr.TTL(cachekeys.PriceLatestKey(2000)))
	assert.Equal(t, 5*time.Minute, mr.TTL(cachekeys.PriceAsOfKey(2000)))

	summary, ok := fc.values[cachekeys.BatchCommitKey(4)].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, summary["prices"])
	assert.Equal(t, 2, summary["written"])
	assert.Equal(t, time.Minute, fc.expires[cachekeys.BatchCommitKey(4)])
}

func TestMirror_KeepsNewerMirroredPrice(t *testing.T) {
	mr, rds := newRedis(t)
	m := NewMirror(Config{Redis: rds, TTL: ttl})
	ctx := context.Background()

	require.NoError(t, m.Publish(ctx, 2, []pricing.Record{{ID: 1, AsOf: t0.Add(time.Second), Payload: "new"}}))
	require.NoError(t, m.Publish(ctx, 1, []pricing.Record{{ID: 1, AsOf: t0, Payload: "old"}}))
	assert.Equal(t, "new", readMirrored(t, mr, 1).Payload, "older asOf never overwrites")

	require.NoError(t, m.Publish(ctx, 3, []pricing.Record{{ID: 1, AsOf: t0.Add(time.Second), Payload: "tie"}}))
	assert.Equal(t, "new", readMirrored(t, mr, 1).Payload, "equal asOf keeps the mirrored value")

	require.NoError(t, m.Publish(ctx, 4, []pricing.Record{{ID: 1, AsOf: t0.Add(time.Second + time.Nanosecond), Payload: "newest"}}))
	assert.Equal(t, "newest", readMirrored(t, mr, 1).Payload)
}

func TestMirror_LateWriteOfOlderCommit(t *testing.T) {
	mr, rds := newRedis(t)
	gate := &gatedScripter{
		Scripter: rds,
		payload:  "old",
		held:     make(chan struct{}),
		release:  make(chan struct{}),
	}
	m := NewMirror(Config{Redis: gate, TTL: ttl, Timeout: 5 * time.Second})
	svc := pricing.NewService(pricing.WithCommitListener(m.Listener()))

	older, err := svc.CreateBatch()
	require.NoError(t, err)
	require.NoError(t, svc.Upload(older, []pricing.Record{{ID: 1, AsOf: t0, Payload: "old"}}))
	newer, err := svc.CreateBatch()
	require.NoError(t, err)
	require.NoError(t, svc.Upload(newer, []pricing.Record{{ID: 1, AsOf: t0.Add(time.Second), Payload: "new"}}))

	done := make(chan error, 1)
	go func() { done <- svc.Commit(older) }()
	<-gate.held

	// The newer commit merges and mirrors while the older write is in flight.
	require.NoError(t, svc.Commit(newer))
	close(gate.release)
	require.NoError(t, <-done)

	global, err := svc.GetPrice(1)
	require.NoError(t, err)
	assert.Equal(t, "new", global.Payload)
	assert.Equal(t, "new", readMirrored(t, mr, 1).Payload, "mirror must not fall behind the price table")
}

func TestMirror_PublishDisabledTTL(t *testing.T) {
	mr, rds := newRedis(t)
	m := NewMirror(Config{Redis: rds, TTL: cachekeys.TTLSet{}})

	require.NoError(t, m.Publish(context.Background(), 1, []pricing.Record{{ID: 1}}))
	assert.Empty(t, mr.Keys())
}

func TestMirror_ListenerSwallowsErrors(t *testing.T) {
	m := NewMirror(Config{Redis: failingScripter{}, TTL: ttl, Timeout: time.Second})

	assert.NotPanics(t, func() {
		m.Listener()(1, []pricing.Record{{ID: 1}})
	})
	assert.ErrorContains(t, m.Publish(context.Background(), 1, []pricing.Record{{ID: 1}}), "redis down")
}

func TestMirror_WiredAsCommitListener(t *testing.T) {
	mr, rds := newRedis(t)
	m := NewMirror(Config{Redis: rds, TTL: ttl, Timeout: time.Second})
	svc := pricing.NewService(pricing.WithCommitListener(m.Listener()))

	id, err := svc.CreateBatch()
	require.NoError(t, err)
	require.NoError(t, svc.Upload(id, []pricing.Record{{ID: 77, AsOf: t0, Payload: "p"}}))
	require.NoError(t, svc.Commit(id))

	assert.True(t, mr.Exists(cachekeys.PriceLatestKey(77)))

	other, err := svc.CreateBatch()
	require.NoError(t, err)
	require.NoError(t, svc.Upload(other, []pricing.Record{{ID: 78, AsOf: t0, Payload: "q"}}))
	require.NoError(t, svc.Discard(other))
	assert.False(t, mr.Exists(cachekeys.PriceLatestKey(78)), "discarded prices are never mirrored")
}

func TestAsOfMarkerOrdersLikeTime(t *testing.T) {
	a := asOfMarker(t0)
	b := asOfMarker(t0.Add(time.Nanosecond))
	c := asOfMarker(t0.In(time.FixedZone("x", 3600)).Add(time.Hour))
	assert.Less(t, a, b)
	assert.Less(t, b, c)
	assert.Equal(t, "20240301120000.000000000", a)
}

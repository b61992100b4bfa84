package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/jsonx"
	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "pricebatch/internal/cache"
	"pricebatch/pkg/pricing"
)

// setIfNewerScript writes the price document and its asOf marker only when
// the stored marker is absent or strictly older. Markers are fixed-width
// UTC timestamps, so string order is time order.
//
// KEYS[1] price document, KEYS[2] asOf marker
// ARGV[1] document, ARGV[2] marker, ARGV[3] ttl in milliseconds
const setIfNewerScript = `
local cur = redis.call('GET', KEYS[2])
if cur and cur >= ARGV[2] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`

const asOfMarkerLayout = "20060102150405.000000000"

// Scripter runs Lua on Redis; *redis.Redis satisfies it.
type Scripter interface {
	EvalCtx(ctx context.Context, script string, keys []string, args ...any) (any, error)
}

// Cache is the slice of go-zero's stores/cache.Cache used for commit summaries.
type Cache interface {
	SetWithExpireCtx(ctx context.Context, key string, val any, expire time.Duration) error
}

// Mirror copies committed prices into Redis so downstream readers can poll
// them without calling the service. It is write-only; the service never
// reads its own state back from Redis. Commits may reach Redis in any
// order, so each price write is a compare-and-set on asOf.
type Mirror struct {
	redis   Scripter
	cache   Cache
	ttl     cachekeys.TTLSet
	timeout time.Duration
}

// Config enumerates dependencies required to mirror prices.
type Config struct {
	Redis Scripter
	// Cache receives commit summaries; optional.
	Cache   Cache
	TTL     cachekeys.TTLSet
	Timeout time.Duration
}

// NewMirror wires a mirror. Returns nil when no Redis is configured.
func NewMirror(cfg Config) *Mirror {
	if cfg.Redis == nil {
		return nil
	}
	return &Mirror{
		redis:   cfg.Redis,
		cache:   cfg.Cache,
		ttl:     cfg.TTL,
		timeout: cfg.Timeout,
	}
}

// Publish writes every record under its latest-price key unless Redis
// already holds a record for that id with the same or a later asOf, then
// records a commit summary for the batch. The first Redis error aborts
// the rest.
func (m *Mirror) Publish(ctx context.Context, batchID int64, records []pricing.Record) error {
	if m == nil || len(records) == 0 {
		return nil
	}
	ttl := cachekeys.PriceTTL(m.ttl)
	if ttl <= 0 {
		return nil
	}

	var written int
	for _, rec := range records {
		ok, err := m.setIfNewer(ctx, batchID, rec, ttl)
		if err != nil {
			return err
		}
		if ok {
			written++
		}
	}
	if skipped := len(records) - written; skipped > 0 {
		logx.WithContext(ctx).Debugf("publish: batch=%d kept %d newer mirrored prices", batchID, skipped)
	}

	summaryTTL := cachekeys.BatchCommitTTL(m.ttl)
	if m.cache == nil || summaryTTL <= 0 {
		return nil
	}
	summary := map[string]any{
		"batch":        batchID,
		"prices":       len(records),
		"written":      written,
		"committed_at": time.Now().UTC().UnixMilli(),
	}
	return m.cache.SetWithExpireCtx(ctx, cachekeys.BatchCommitKey(batchID), summary, summaryTTL)
}

func (m *Mirror) setIfNewer(ctx context.Context, batchID int64, rec pricing.Record, ttl time.Duration) (bool, error) {
	doc, err := jsonx.MarshalToString(map[string]any{
		"id":      rec.ID,
		"asOf":    rec.AsOf.UTC().Format(time.RFC3339Nano),
		"payload": rec.Payload,
		"batch":   batchID,
	})
	if err != nil {
		return false, fmt.Errorf("publish: encode price %d: %w", rec.ID, err)
	}

	keys := []string{cachekeys.PriceLatestKey(rec.ID), cachekeys.PriceAsOfKey(rec.ID)}
	val, err := m.redis.EvalCtx(ctx, setIfNewerScript, keys, doc, asOfMarker(rec.AsOf), ttl.Milliseconds())
	if err != nil {
		return false, fmt.Errorf("publish: price %d: %w", rec.ID, err)
	}
	n, _ := val.(int64)
	return n == 1, nil
}

func asOfMarker(t time.Time) string {
	return t.UTC().Format(asOfMarkerLayout)
}

// Listener adapts the mirror to a pricing.CommitListener. Failures are
// logged and never surface to the committing caller.
func (m *Mirror) Listener() pricing.CommitListener {
	return func(batchID int64, published []pricing.Record) {
		ctx := context.Background()
		if m.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.timeout)
			defer cancel()
		}
		if err := m.Publish(ctx, batchID, published); err != nil {
			logx.WithContext(ctx).Errorf("publish: mirror batch=%d prices=%d err=%v", batchID, len(published), err)
		}
	}
}

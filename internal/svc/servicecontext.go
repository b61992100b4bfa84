package svc

import (
	"errors"

	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "pricebatch/internal/cache"
	"pricebatch/internal/config"
	"pricebatch/internal/metrics"
	"pricebatch/internal/publish"
	"pricebatch/pkg/pricing"
)

// errMirrorMiss is only reported by cache reads, which the mirror never does.
var errMirrorMiss = errors.New("svc: mirrored price not found")

type ServiceContext struct {
	Config config.Config

	// Prices owns the batch registry and the global price table.
	Prices *pricing.Service

	// Optional Redis mirror of committed prices (nil unless Publish.Enabled).
	Mirror *publish.Mirror
}

func NewServiceContext(c config.Config) *ServiceContext {
	sc := &ServiceContext{Config: c}

	opts := []pricing.Option{
		pricing.WithCapacity(c.Batches.Capacity),
		pricing.WithShards(c.Batches.Shards),
		pricing.WithCommitListener(func(_ int64, published []pricing.Record) {
			metrics.AddPublished(len(published))
		}),
	}

	// Only mirror when Redis is configured; the price table stays the source of truth.
	if c.Publish.Enabled && c.RedisEnabled() {
		rds := redis.MustNewRedis(c.Redis)
		store := gocache.NewNode(rds, syncx.NewSingleFlight(), gocache.NewStat("pricebatch"), errMirrorMiss)
		sc.Mirror = publish.NewMirror(publish.Config{
			Redis:   rds,
			Cache:   store,
			TTL:     cachekeys.NewTTLSet(c.TTL),
			Timeout: c.PublishTimeout(),
		})
		opts = append(opts, pricing.WithCommitListener(sc.Mirror.Listener()))
	}

	sc.Prices = pricing.NewService(opts...)
	return sc
}

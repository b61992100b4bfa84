// Package metrics exposes batch and price counters through go-zero's
// core/metric. Values are only collected when the DevServer metrics
// endpoint is enabled in the rest config.
package metrics

import (
	"errors"

	"github.com/zeromicro/go-zero/core/metric"

	"pricebatch/pkg/pricing"
)

const namespace = "pricebatch"

var (
	batchOps = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: namespace,
		Subsystem: "batch",
		Name:      "ops_total",
		Help:      "batch operations by op and outcome.",
		Labels:    []string{"op", "result"},
	})

	records = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: namespace,
		Subsystem: "prices",
		Name:      "records_total",
		Help:      "price records staged by uploads or published by commits.",
		Labels:    []string{"stage"},
	})

	sizes = metric.NewGaugeVec(&metric.GaugeVecOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "size",
		Help:      "live batches and published price ids.",
		Labels:    []string{"kind"},
	})
)

// Result maps an operation error onto a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, pricing.ErrBatchNotFound):
		return "batch_not_found"
	case errors.Is(err, pricing.ErrBatchClosed):
		return "batch_closed"
	case errors.Is(err, pricing.ErrPriceNotFound):
		return "price_not_found"
	case errors.Is(err, pricing.ErrCapacityExceeded):
		return "capacity_exceeded"
	default:
		return "error"
	}
}

// ObserveOp counts one batch operation.
func ObserveOp(op string, err error) {
	batchOps.Inc(op, Result(err))
}

// AddStaged counts records accepted by an upload.
func AddStaged(n int) {
	if n > 0 {
		records.Add(float64(n), "staged")
	}
}

// AddPublished counts records merged by a commit.
func AddPublished(n int) {
	if n > 0 {
		records.Add(float64(n), "published")
	}
}

// SetSizes reports the current registry and price table sizes.
func SetSizes(liveBatches, prices int) {
	sizes.Set(float64(liveBatches), "batches")
	sizes.Set(float64(prices), "prices")
}

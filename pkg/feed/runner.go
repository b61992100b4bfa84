package feed

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// Plan is one producer run: open a batch, upload Prices in chunks, then
// commit or discard.
type Plan struct {
	Name    string
	Prices  []Price
	Chunk   int
	Discard bool
}

// Result reports how a plan ended.
type Result struct {
	Plan     string
	BatchID  int64
	Uploaded int
	Chunks   int
	Closed   string // committed | discarded | "" on failure
	Err      error
}

// Summary aggregates a run.
type Summary struct {
	Results   []Result
	Committed int
	Discarded int
	Failed    int
	Prices    int
}

// Runner executes plans against a Client.
type Runner struct {
	client      *Client
	concurrency int
}

func NewRunner(client *Client, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{client: client, concurrency: concurrency}
}

// Run executes every plan, at most concurrency at a time. Plan failures are
// reported in the summary rather than aborting the run.
func (r *Runner) Run(ctx context.Context, plans []Plan) Summary {
	results := make([]Result, len(plans))
	var done atomic.Int64

	tasks := threading.NewTaskRunner(r.concurrency)
	for i := range plans {
		tasks.Schedule(func() {
			results[i] = r.runOne(ctx, plans[i])
			logx.WithContext(ctx).Debugf("pricefeed: %d/%d plans done", done.Add(1), len(plans))
		})
	}
	tasks.Wait()

	sum := Summary{Results: results}
	for _, res := range results {
		sum.Prices += res.Uploaded
		switch {
		case res.Err != nil:
			sum.Failed++
		case res.Closed == "committed":
			sum.Committed++
		case res.Closed == "discarded":
			sum.Discarded++
		}
	}
	return sum
}

func (r *Runner) runOne(ctx context.Context, p Plan) Result {
	res := Result{Plan: p.Name}
	logger := logx.WithContext(ctx)

	id, err := r.client.CreateBatch(ctx)
	if err != nil {
		res.Err = fmt.Errorf("%s: create: %w", p.Name, err)
		return res
	}
	res.BatchID = id

	for _, chunk := range chunks(p.Prices, p.Chunk) {
		if err := r.client.Upload(ctx, id, chunk); err != nil {
			res.Err = fmt.Errorf("%s: upload to batch %d: %w", p.Name, id, err)
			// Release the slot; the upload error is what gets reported.
			if derr := r.client.Discard(context.WithoutCancel(ctx), id); derr != nil {
				logger.Errorf("pricefeed: discard batch %d after failed upload: %v", id, derr)
			}
			return res
		}
		res.Uploaded += len(chunk)
		res.Chunks++
	}

	if p.Discard {
		err, res.Closed = r.client.Discard(ctx, id), "discarded"
	} else {
		err, res.Closed = r.client.Commit(ctx, id), "committed"
	}
	if err != nil {
		res.Err = fmt.Errorf("%s: close batch %d: %w", p.Name, id, err)
		res.Closed = ""
		return res
	}
	logger.Infof("pricefeed: %s batch %d %s with %d prices", p.Name, id, res.Closed, res.Uploaded)
	return res
}

// chunks splits prices into slices of at most size elements; size <= 0
// sends everything in one upload. An empty plan still sends one empty upload.
func chunks(prices []Price, size int) [][]Price {
	if size <= 0 || len(prices) <= size {
		return [][]Price{prices}
	}
	out := make([][]Price, 0, (len(prices)+size-1)/size)
	for start := 0; start < len(prices); start += size {
		end := min(start+size, len(prices))
		out = append(out, prices[start:end])
	}
	return out
}

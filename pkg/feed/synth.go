package feed

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// SynthConfig shapes a synthetic run.
type SynthConfig struct {
	Batches        int
	PricesPerBatch int
	// IDs are drawn from [MinID, MaxID).
	MinID int64
	MaxID int64
	// Start is the asOf of the first price; each later price is a little newer.
	Start   time.Time
	Step    time.Duration
	Chunk   int
	Discard float64 // probability that a batch is discarded
	Seed    uint64
}

func (c SynthConfig) Validate() error {
	switch {
	case c.Batches <= 0:
		return errors.New("feed: synth batches must be positive")
	case c.PricesPerBatch < 0:
		return errors.New("feed: synth prices per batch must not be negative")
	case c.MinID < 0 || c.MaxID <= c.MinID:
		return errors.New("feed: synth id range must be non-empty and non-negative")
	case c.Discard < 0 || c.Discard > 1:
		return errors.New("feed: synth discard ratio must be within [0,1]")
	}
	return nil
}

// Synthesize builds plans with random ids and uuid payloads. The same seed
// yields the same ids, asOf values and discard choices.
func Synthesize(c SynthConfig) ([]Plan, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Start.IsZero() {
		c.Start = time.Now().UTC()
	}
	if c.Step <= 0 {
		c.Step = time.Millisecond
	}

	rng := rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	span := c.MaxID - c.MinID
	plans := make([]Plan, 0, c.Batches)
	tick := 0
	for b := 0; b < c.Batches; b++ {
		prices := make([]Price, 0, c.PricesPerBatch)
		for i := 0; i < c.PricesPerBatch; i++ {
			prices = append(prices, Price{
				ID:      c.MinID + rng.Int64N(span),
				AsOf:    c.Start.Add(time.Duration(tick) * c.Step),
				Payload: uuid.NewString(),
			})
			tick++
		}
		plans = append(plans, Plan{
			Name:    "synth-" + uuid.NewString()[:8],
			Prices:  prices,
			Chunk:   c.Chunk,
			Discard: rng.Float64() < c.Discard,
		})
	}
	return plans, nil
}

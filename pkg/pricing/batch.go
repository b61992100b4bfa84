package pricing

import "sync"

const batchShards = 8

// Batch stages records until it is committed or discarded.
//
// Uploads hold the read side of mu so they run in parallel with each other;
// per-id races between them are settled by the table's compute. finalize
// holds the write side, so it waits for in-flight uploads and no upload can
// observe valid == true once it has run.
type Batch struct {
	id int64

	mu      sync.RWMutex
	valid   bool
	records *priceTable
}

func newBatch(id int64) *Batch {
	return &Batch{
		id:      id,
		valid:   true,
		records: newPriceTable(batchShards),
	}
}

// ID returns the identifier assigned by the BatchStore.
func (b *Batch) ID() int64 { return b.id }

// Upload resolves every record against the batch's current contents.
func (b *Batch) Upload(records []Record) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.valid {
		return batchClosed(b.id)
	}
	for _, rec := range records {
		b.records.compute(rec)
	}
	return nil
}

// finalize invalidates the batch and returns its contents. ok is false when
// another caller already finalized it; that caller owns retirement.
func (b *Batch) finalize() (snapshot []Record, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.valid {
		return nil, false
	}
	b.valid = false
	return b.records.snapshot(), true
}

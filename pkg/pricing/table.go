package pricing

import "sync"

const defaultShards = 32

// priceTable is a striped map of id -> Record. Every write goes through
// compute, which resolves and stores under the owning shard's lock.
type priceTable struct {
	shards []tableShard
}

type tableShard struct {
	mu      sync.RWMutex
	records map[int64]Record
}

func newPriceTable(shards int) *priceTable {
	if shards <= 0 {
		shards = defaultShards
	}
	t := &priceTable{shards: make([]tableShard, shards)}
	for i := range t.shards {
		t.shards[i].records = make(map[int64]Record)
	}
	return t
}

func (t *priceTable) shard(id int64) *tableShard {
	return &t.shards[uint64(id)%uint64(len(t.shards))]
}

// compute resolves incoming against the stored value and returns whatever
// is stored afterwards.
func (t *priceTable) compute(incoming Record) Record {
	s := t.shard(incoming.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing *Record
	if cur, ok := s.records[incoming.ID]; ok {
		existing = &cur
	}
	next := Resolve(existing, incoming)
	s.records[incoming.ID] = next
	return next
}

func (t *priceTable) get(id int64) (Record, bool) {
	s := t.shard(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

func (t *priceTable) len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		n += len(s.records)
		s.mu.RUnlock()
	}
	return n
}

func (t *priceTable) snapshot() []Record {
	out := make([]Record, 0, t.len())
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		for _, rec := range s.records {
			out = append(out, rec)
		}
		s.mu.RUnlock()
	}
	return out
}

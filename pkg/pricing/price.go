package pricing

import (
	"fmt"
	"time"
)

// Record is a single priced item observed at AsOf. Records are values and
// are never mutated after construction.
type Record struct {
	ID      int64
	AsOf    time.Time
	Payload string
}

// Equal reports whether two records carry the same id, timestamp and payload.
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID && r.AsOf.Equal(other.AsOf) && r.Payload == other.Payload
}

func (r Record) String() string {
	return fmt.Sprintf("Record[id=%d asOf=%s payload=%q]", r.ID, r.AsOf.Format(time.RFC3339Nano), r.Payload)
}

// Resolve merges two observations of the same id. The incoming record wins
// only when existing is absent or strictly older; equal timestamps keep the
// existing value.
func Resolve(existing *Record, incoming Record) Record {
	if existing == nil || existing.AsOf.Before(incoming.AsOf) {
		return incoming
	}
	return *existing
}

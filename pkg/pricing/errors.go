package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrBatchNotFound means no live batch is registered under the id. It
	// covers ids that never existed and ids already committed or discarded.
	ErrBatchNotFound = errors.New("pricing: batch not found")
	// ErrBatchClosed means an upload reached a batch after it was finalized.
	ErrBatchClosed = errors.New("pricing: batch already closed")
	// ErrPriceNotFound means no commit has published the price id.
	ErrPriceNotFound = errors.New("pricing: price not found")
	// ErrCapacityExceeded means the registry already holds its maximum
	// number of live batches.
	ErrCapacityExceeded = errors.New("pricing: batch capacity exceeded")
)

func batchNotFound(id int64) error {
	return fmt.Errorf("batch %d: %w", id, ErrBatchNotFound)
}

func batchClosed(id int64) error {
	return fmt.Errorf("batch %d: %w", id, ErrBatchClosed)
}

func priceNotFound(id int64) error {
	return fmt.Errorf("price %d: %w", id, ErrPriceNotFound)
}

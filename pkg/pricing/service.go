package pricing

import "github.com/zeromicro/go-zero/core/logx"

// CommitListener observes a finished commit. published holds the global
// value of every id the batch touched, as it stood right after the merge.
type CommitListener func(batchID int64, published []Record)

// Option customises a Service.
type Option func(*Service)

// WithCapacity bounds the number of simultaneously open batches.
func WithCapacity(n int) Option {
	return func(s *Service) { s.capacity = n }
}

// WithShards sets the stripe count of the global price table.
func WithShards(n int) Option {
	return func(s *Service) { s.shards = n }
}

// WithCommitListener registers l to run after every successful commit.
func WithCommitListener(l CommitListener) Option {
	return func(s *Service) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// Service owns the batch registry and the global price table.
type Service struct {
	capacity  int
	shards    int
	listeners []CommitListener

	batches *BatchStore
	prices  *priceTable
}

// NewService builds a Service with its own registry and price table.
func NewService(opts ...Option) *Service {
	s := &Service{
		capacity: DefaultCapacity,
		shards:   defaultShards,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.batches = NewBatchStore(s.capacity)
	s.prices = newPriceTable(s.shards)
	return s
}

// CreateBatch opens a new batch and returns its identifier.
func (s *Service) CreateBatch() (int64, error) {
	b, err := s.batches.Create()
	if err != nil {
		return 0, err
	}
	return b.ID(), nil
}

// Upload stages records into an open batch.
func (s *Service) Upload(batchID int64, records []Record) error {
	b, err := s.batches.Get(batchID)
	if err != nil {
		return err
	}
	return b.Upload(records)
}

// Commit closes the batch and merges its contents into the global table.
func (s *Service) Commit(batchID int64) error {
	snapshot, err := s.close(batchID)
	if err != nil {
		return err
	}

	published := make([]Record, 0, len(snapshot))
	for _, rec := range snapshot {
		published = append(published, s.prices.compute(rec))
	}
	logx.Infof("pricing: batch %d committed, %d prices merged", batchID, len(snapshot))

	for _, l := range s.listeners {
		l(batchID, published)
	}
	return nil
}

// Discard closes the batch without publishing anything.
func (s *Service) Discard(batchID int64) error {
	snapshot, err := s.close(batchID)
	if err != nil {
		return err
	}
	logx.Infof("pricing: batch %d discarded, %d prices dropped", batchID, len(snapshot))
	return nil
}

// GetPrice returns the latest committed record for id.
func (s *Service) GetPrice(id int64) (Record, error) {
	rec, ok := s.prices.get(id)
	if !ok {
		return Record{}, priceNotFound(id)
	}
	return rec, nil
}

// LiveBatches returns the number of open batches.
func (s *Service) LiveBatches() int { return s.batches.Len() }

// PriceCount returns the number of ids in the global table.
func (s *Service) PriceCount() int { return s.prices.len() }

// close finalizes and retires a batch. A caller that loses a race to close
// the same batch sees ErrBatchNotFound, as if it arrived after retirement.
func (s *Service) close(batchID int64) ([]Record, error) {
	b, err := s.batches.Get(batchID)
	if err != nil {
		return nil, err
	}
	snapshot, ok := b.finalize()
	if !ok {
		return nil, batchNotFound(batchID)
	}
	s.batches.Retire(batchID)
	return snapshot, nil
}

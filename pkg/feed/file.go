package feed

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the YAML feed format:
//
//	batches:
//	  - name: morning
//	    chunk: 500
//	    prices:
//	      - {id: 1, asOf: 2024-03-01T09:00:00Z, payload: "101.5"}
//	  - name: bad-run
//	    discard: true
//	    prices: [...]
type File struct {
	Batches []FileBatch `yaml:"batches"`
}

type FileBatch struct {
	Name    string      `yaml:"name"`
	Discard bool        `yaml:"discard"`
	Chunk   int         `yaml:"chunk"`
	Prices  []FilePrice `yaml:"prices"`
}

type FilePrice struct {
	ID      int64     `yaml:"id"`
	AsOf    time.Time `yaml:"asOf"`
	Payload string    `yaml:"payload"`
}

// LoadFile reads and validates a feed file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed: read %s: %w", path, err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("feed: %s: %w", path, err)
	}
	return f, nil
}

// ParseFile decodes and validates feed YAML.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	if len(f.Batches) == 0 {
		return errors.New("no batches")
	}
	for i, b := range f.Batches {
		if b.Chunk < 0 {
			return fmt.Errorf("batches[%d]: chunk must not be negative", i)
		}
		for j, p := range b.Prices {
			if p.ID < 0 {
				return fmt.Errorf("batches[%d].prices[%d]: id must not be negative", i, j)
			}
			if p.AsOf.IsZero() {
				return fmt.Errorf("batches[%d].prices[%d]: asOf is required", i, j)
			}
		}
	}
	return nil
}

// Plans converts the file into runnable plans. A batch without its own
// chunk size uses defaultChunk.
func (f *File) Plans(defaultChunk int) []Plan {
	plans := make([]Plan, 0, len(f.Batches))
	for i, b := range f.Batches {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("batch-%d", i+1)
		}
		chunk := b.Chunk
		if chunk == 0 {
			chunk = defaultChunk
		}
		prices := make([]Price, 0, len(b.Prices))
		for _, p := range b.Prices {
			prices = append(prices, Price{ID: p.ID, AsOf: p.AsOf, Payload: p.Payload})
		}
		plans = append(plans, Plan{Name: name, Prices: prices, Chunk: chunk, Discard: b.Discard})
	}
	return plans
}

package cache

import (
	"strconv"
	"strings"
	"time"

	"pricebatch/internal/config"
)

// Namespace is the Redis key prefix for the service.
const Namespace = "pricebatch"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// PriceLatestKey holds the latest committed record for a price id.
func PriceLatestKey(id int64) string {
	return formatKey("price", "latest", strconv.FormatInt(id, 10))
}

// PriceAsOfKey holds the sortable asOf of the record under PriceLatestKey.
func PriceAsOfKey(id int64) string {
	return formatKey("price", "asof", strconv.FormatInt(id, 10))
}

// BatchCommitKey holds a summary of the last commit of a batch.
func BatchCommitKey(batchID int64) string {
	return formatKey("batch", "commit", strconv.FormatInt(batchID, 10))
}

// PriceTTL is how long a mirrored price stays readable after its commit.
func PriceTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// BatchCommitTTL is short-lived; it only serves dashboards tailing commits.
func BatchCommitTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}

package config

// DefaultFile is the service config path relative to the repository root.
const DefaultFile = "etc/pricebatch.yaml"

// Default values for sections that may be omitted from the YAML file.
const (
	DefaultBatchCapacity  = 10000
	DefaultBatchShards    = 32
	DefaultTTLShort       = 10
	DefaultTTLMedium      = 60
	DefaultTTLLong        = 300
	DefaultPublishTimeout = 2000
)

func (c *Config) applyDefaults() {
	if c.Batches.Capacity == 0 {
		c.Batches.Capacity = DefaultBatchCapacity
	}
	if c.Batches.Shards == 0 {
		c.Batches.Shards = DefaultBatchShards
	}
	if c.TTL.Short == 0 {
		c.TTL.Short = DefaultTTLShort
	}
	if c.TTL.Medium == 0 {
		c.TTL.Medium = DefaultTTLMedium
	}
	if c.TTL.Long == 0 {
		c.TTL.Long = DefaultTTLLong
	}
	if c.Publish.Timeout == 0 {
		c.Publish.Timeout = DefaultPublishTimeout
	}
}

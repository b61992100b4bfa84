package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pricebatch/internal/config"
)

func TestConfigSummaryLines_Nil(t *testing.T) {
	assert.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))
}

func TestConfigSummaryLines(t *testing.T) {
	cfg := &config.Config{Env: "dev"}
	cfg.Host = "127.0.0.1"
	cfg.Port = 8888
	cfg.Batches = config.BatchConf{Capacity: 50, Shards: 8}
	cfg.TTL = config.CacheTTL{Short: 1, Medium: 2, Long: 3}

	lines := ConfigSummaryLines(cfg)
	assert.Contains(t, lines, "Environment: dev")
	assert.Contains(t, lines, "Listen: 127.0.0.1:8888")
	assert.Contains(t, lines, "Batch capacity: 50")
	assert.Contains(t, lines, "Redis: not configured")
	assert.Contains(t, lines, "TTL (short/medium/long): 1s / 2s / 3s")
	assert.Contains(t, lines, "Publish: disabled")

	cfg.Publish = config.PublishConf{Enabled: true, Timeout: 1500}
	assert.Contains(t, ConfigSummaryLines(cfg), "Publish: enabled but Redis missing")

	cfg.Redis.Host = "localhost:6379"
	lines = ConfigSummaryLines(cfg)
	assert.Contains(t, lines, "Redis: configured")
	assert.Contains(t, lines, "Publish: redis mirror, 1.5s budget")
}

func TestDotenvLine(t *testing.T) {
	assert.Equal(t, "Dotenv: none", dotenvLine(""))
	assert.Equal(t, "Dotenv: /srv/.env", dotenvLine("/srv/.env"))
}

package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"pricebatch/internal/config"
	"pricebatch/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Listen: %s:%d", cfg.Host, cfg.Port),
		fmt.Sprintf("Batch capacity: %d", cfg.Batches.Capacity),
		fmt.Sprintf("Price table shards: %d", cfg.Batches.Shards),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("TTL (short/medium/long): %ds / %ds / %ds", cfg.TTL.Short, cfg.TTL.Medium, cfg.TTL.Long),
		publishLine(cfg),
		dotenvLine(confkit.DotenvFile()),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func publishLine(cfg *config.Config) string {
	switch {
	case !cfg.Publish.Enabled:
		return "Publish: disabled"
	case !cfg.RedisEnabled():
		return "Publish: enabled but Redis missing"
	default:
		return fmt.Sprintf("Publish: redis mirror, %s budget", cfg.PublishTimeout())
	}
}

func dotenvLine(file string) string {
	if file == "" {
		return "Dotenv: none"
	}
	return fmt.Sprintf("Dotenv: %s", file)
}

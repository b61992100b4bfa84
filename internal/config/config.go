package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"pricebatch/pkg/confkit"
)

type BatchConf struct {
	// Capacity caps the number of simultaneously open batches.
	Capacity int `json:",default=10000"`
	// Shards is the stripe count of the global price table.
	Shards int `json:",default=32"`
}

type CacheTTL struct {
	Short  int `json:",default=10"` // seconds
	Medium int `json:",default=60"`
	Long   int `json:",default=300"`
}

type PublishConf struct {
	// Enabled mirrors committed prices into Redis. Requires Redis.Host.
	Enabled bool `json:",optional"`
	Timeout int  `json:",default=2000"` // milliseconds per commit
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env     string          `json:",default=test"`
	Batches BatchConf       `json:",optional"`
	Redis   redis.RedisConf `json:",optional"`
	TTL     CacheTTL        `json:",optional"`
	Publish PublishConf     `json:",optional"`

	mainPath string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Host) != ""
}

// PublishTimeout returns the per-commit budget for mirroring prices.
func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.Publish.Timeout) * time.Millisecond
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	path = confkit.ResolvePath("", path)
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			// Allow running from a subdirectory (tests, go run ./...).
			if rooted, rerr := confkit.ProjectPath(path); rerr == nil {
				path = rooted
			}
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}
	cfg.mainPath = absPath
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if c.Batches.Capacity <= 0 {
		return errors.New("config: batches.capacity must be positive")
	}
	if c.Batches.Shards <= 0 {
		return errors.New("config: batches.shards must be positive")
	}
	if c.Publish.Enabled {
		if !c.RedisEnabled() {
			return errors.New("config: publish.enabled requires redis.host")
		}
		if c.Publish.Timeout <= 0 {
			return errors.New("config: publish.timeout must be positive")
		}
	}
	return c.validateTTL()
}

func (c *Config) validateTTL() error {
	if c.TTL.Short <= 0 {
		return errors.New("config: ttl.short must be positive")
	}
	if c.TTL.Medium <= 0 {
		return errors.New("config: ttl.medium must be positive")
	}
	if c.TTL.Long <= 0 {
		return errors.New("config: ttl.long must be positive")
	}
	return nil
}

func (c *Config) MainPath() string {
	return c.mainPath
}

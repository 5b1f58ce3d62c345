package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils"
)

type Config struct {
	// Chain and venue selection
	ChainID   uint64   `yaml:"chain_id" json:"chain_id"`
	Platforms []string `yaml:"platforms" json:"platforms"`

	Routing    RoutingConfig    `yaml:"routing" json:"routing"`
	Aggregator AggregatorConfig `yaml:"aggregator" json:"aggregator"`
	Metrics    MetricsConfig    `yaml:"metrics" json:"metrics"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`

	Debug bool `yaml:"debug" json:"debug"` // forces debug level
}

type RoutingConfig struct {
	MaxHops            int    `yaml:"max_hops" json:"max_hops"`
	MaxResults         int    `yaml:"max_results" json:"max_results"`                   // 0 keeps every route
	DefaultSlippageBps uint32 `yaml:"default_slippage_bps" json:"default_slippage_bps"` // basis points
}

type AggregatorConfig struct {
	CacheSize    int             `yaml:"cache_size" json:"cache_size"` // 0 disables the quote cache
	QuoteTimeout time.Duration   `yaml:"quote_timeout" json:"quote_timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" json:"burst_size"`
	WaitTimeout       time.Duration `yaml:"wait_timeout" json:"wait_timeout"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace"`
	Textfile  string `yaml:"textfile" json:"textfile"` // node_exporter textfile written after each run
}

type LoggingConfig struct {
	Level       string   `yaml:"level" json:"level"`       // debug, info, warn or error
	Encoding    string   `yaml:"encoding" json:"encoding"` // json or console
	OutputPaths []string `yaml:"output_paths" json:"output_paths"`
}

func (c *Config) ValidateConfig() error {
	var errors []string

	if c.ChainID == 0 {
		errors = append(errors, "chain_id must be specified")
	}
	chainID := types.ChainID(c.ChainID)

	if len(c.Platforms) == 0 {
		errors = append(errors, "at least one platform must be enabled")
	}
	for _, name := range c.Platforms {
		platform, err := dex.ParsePlatform(name)
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}
		if c.ChainID != 0 && !platform.SupportsChain(chainID) {
			errors = append(errors, fmt.Sprintf("%s is not deployed on %s", platform, chainID))
		}
	}

	if err := c.Routing.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("routing config error: %v", err))
	}
	if err := c.Aggregator.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("aggregator config error: %v", err))
	}
	if err := c.Logging.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("logging config error: %v", err))
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		errors = append(errors, "metrics namespace must be specified when metrics are enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (r *RoutingConfig) Validate() error {
	if r.MaxHops < 1 {
		return fmt.Errorf("max hops must be at least 1")
	}
	if r.MaxResults < 0 {
		return fmt.Errorf("max results must not be negative")
	}
	return nil
}

func (a *AggregatorConfig) Validate() error {
	if a.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative")
	}
	if a.QuoteTimeout <= 0 {
		return fmt.Errorf("quote timeout must be positive")
	}
	if err := a.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

func (r *RateLimitConfig) Validate() error {
	if r.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive")
	}
	if r.BurstSize <= 0 {
		return fmt.Errorf("burst size must be positive")
	}
	if r.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return err
	}
	switch l.Encoding {
	case "", "json", "console":
		return nil
	default:
		return fmt.Errorf("unknown log encoding %q", l.Encoding)
	}
}

// LoggerOptions maps the logging section onto the process logger. Debug
// overrides the configured level.
func (c *Config) LoggerOptions() (utils.LoggerOptions, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return utils.LoggerOptions{}, err
	}
	if c.Debug {
		level = zapcore.DebugLevel
	}
	return utils.LoggerOptions{
		Level:       level,
		Encoding:    c.Logging.Encoding,
		OutputPaths: c.Logging.OutputPaths,
	}, nil
}

// Chain returns the configured chain.
func (c *Config) Chain() types.ChainID {
	return types.ChainID(c.ChainID)
}

// EnabledPlatforms resolves the configured platform names.
func (c *Config) EnabledPlatforms() ([]dex.Platform, error) {
	platforms := make([]dex.Platform, 0, len(c.Platforms))
	for _, name := range c.Platforms {
		platform, err := dex.ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}

// LoadConfig reads a YAML config on top of DefaultConfig, applies DEXROUTE_*
// environment overrides and validates the result. An empty path skips the
// file.
func LoadConfig(cfgFile string) (*Config, error) {
	config := DefaultConfig()

	if cfgFile != "" {
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.ValidateConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func SaveConfig(cfg *Config, cfgFile string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(cfgFile, data, 0o644)
}

func DefaultConfig() *Config {
	return &Config{
		ChainID:   uint64(types.Mainnet),
		Platforms: []string{"uniswap", "sushiswap", "swapr"},
		Routing: RoutingConfig{
			MaxHops:            3,
			MaxResults:         3,
			DefaultSlippageBps: 50, // 0.5%
		},
		Aggregator: AggregatorConfig{
			CacheSize:    1024,
			QuoteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 50,
				BurstSize:         100,
				WaitTimeout:       time.Second,
			},
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "dexroute",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Encoding:    "json",
			OutputPaths: []string{"stderr"},
		},
	}
}

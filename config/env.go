package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvChainID     = "DEXROUTE_CHAIN_ID"
	EnvPlatforms   = "DEXROUTE_PLATFORMS" // comma separated
	EnvMaxHops     = "DEXROUTE_MAX_HOPS"
	EnvMaxResults  = "DEXROUTE_MAX_RESULTS"
	EnvSlippageBps = "DEXROUTE_SLIPPAGE_BPS"
	EnvDebug       = "DEXROUTE_DEBUG"
	EnvLogLevel    = "DEXROUTE_LOG_LEVEL"
)

// LoadEnv loads environment variables from .env files. Missing files are
// not an error.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// GetEnvWithDefault gets an environment variable with a default value
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ApplyEnv overrides c with any DEXROUTE_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v := GetEnvWithDefault(EnvChainID, ""); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvChainID, err)
		}
		c.ChainID = id
	}
	if v := GetEnvWithDefault(EnvPlatforms, ""); v != "" {
		c.Platforms = strings.Split(v, ",")
		for i := range c.Platforms {
			c.Platforms[i] = strings.TrimSpace(c.Platforms[i])
		}
	}
	if v := GetEnvWithDefault(EnvMaxHops, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxHops, err)
		}
		c.Routing.MaxHops = n
	}
	if v := GetEnvWithDefault(EnvMaxResults, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxResults, err)
		}
		c.Routing.MaxResults = n
	}
	if v := GetEnvWithDefault(EnvSlippageBps, ""); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSlippageBps, err)
		}
		c.Routing.DefaultSlippageBps = uint32(n)
	}
	if v := GetEnvWithDefault(EnvDebug, ""); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	if v := GetEnvWithDefault(EnvLogLevel, ""); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

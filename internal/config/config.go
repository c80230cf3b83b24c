package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pubfs/internal/checksum"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override file settings.
const (
	EnvHashAlgorithm  = "PUBFS_HASH_ALGORITHM"
	EnvOverwrite      = "PUBFS_OVERWRITE"
	EnvRetryAttempts  = "PUBFS_RETRY_ATTEMPTS"
	EnvRetryBaseDelay = "PUBFS_RETRY_BASE_DELAY"

	// EnvFileName is read from the config directory before the process environment.
	EnvFileName = ".env"
)

// RetryConfig bounds how often a failed file copy is attempted. BaseDelay is
// a Go duration string, doubled after every failed attempt.
type RetryConfig struct {
	Attempts  int    `yaml:"attempts"`
	BaseDelay string `yaml:"base_delay"`
}

// ProjectConfig holds the settings read from pubfs.yaml, after .env and
// environment overrides are applied by Resolve.
type ProjectConfig struct {
	HashAlgorithm string      `yaml:"hash_algorithm"`
	Overwrite     bool        `yaml:"overwrite"`
	Retry         RetryConfig `yaml:"retry"`
}

// Default returns the settings used when no config file is present.
func Default() *ProjectConfig {
	return &ProjectConfig{
		HashAlgorithm: pubfs.DefaultHashAlgorithm,
		Retry: RetryConfig{
			Attempts:  pubfs.DefaultCopyAttempts,
			BaseDelay: pubfs.DefaultRetryBaseDelay.String(),
		},
	}
}

// Load reads pubfs.yaml from dir. Fields absent from the file keep their defaults.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, pubfs.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pubfs.ErrInvalidConfig, configPath, err)
	}
	return cfg, nil
}

// Resolve builds the effective configuration for dir: defaults, then
// pubfs.yaml, then dir/.env, then the process environment. The result is
// validated.
func Resolve(dir string) (*ProjectConfig, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	envFile, err := readEnvFile(filepath.Join(dir, EnvFileName))
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := envFile[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", pubfs.ErrInvalidConfig, path, err)
	}
	return values, nil
}

// ApplyEnv overrides fields from the variables lookup reports as set.
func (c *ProjectConfig) ApplyEnv(lookup func(key string) (string, bool)) error {
	if v, ok := lookup(EnvHashAlgorithm); ok && v != "" {
		c.HashAlgorithm = v
	}
	if v, ok := lookup(EnvOverwrite); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", pubfs.ErrInvalidConfig, EnvOverwrite, v)
		}
		c.Overwrite = b
	}
	if v, ok := lookup(EnvRetryAttempts); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", pubfs.ErrInvalidConfig, EnvRetryAttempts, v)
		}
		c.Retry.Attempts = n
	}
	if v, ok := lookup(EnvRetryBaseDelay); ok && v != "" {
		c.Retry.BaseDelay = v
	}
	return nil
}

// Validate rejects unknown algorithms, attempt budgets below one and
// unparseable delays.
func (c *ProjectConfig) Validate() error {
	if !checksum.Supported(c.HashAlgorithm) {
		return fmt.Errorf("%w: hash_algorithm %q (supported: %v)", pubfs.ErrInvalidConfig, c.HashAlgorithm, checksum.Algorithms())
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("%w: retry.attempts must be at least 1, got %d", pubfs.ErrInvalidConfig, c.Retry.Attempts)
	}
	if _, err := c.BaseDelay(); err != nil {
		return err
	}
	return nil
}

// BaseDelay parses Retry.BaseDelay, defaulting to pubfs.DefaultRetryBaseDelay when empty.
func (c *ProjectConfig) BaseDelay() (time.Duration, error) {
	if c.Retry.BaseDelay == "" {
		return pubfs.DefaultRetryBaseDelay, nil
	}
	d, err := time.ParseDuration(c.Retry.BaseDelay)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: retry.base_delay %q is not a non-negative duration", pubfs.ErrInvalidConfig, c.Retry.BaseDelay)
	}
	return d, nil
}

// Package config loads docqa settings from a YAML file in the XDG config
// directory, overridden by DOCQA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	defaultMaxRetries = 3

	configFileName = "config.yaml"
	envPrefix      = "DOCQA_"
	maxFileSize    = 1024 * 1024
)

// Answerer backends.
const (
	BackendExtractive = "extractive"
	BackendOpenAI     = "openai"
)

// Config is the full docqa configuration.
type Config struct {
	Answerer Answerer `koanf:"answerer"`
	Server   Server   `koanf:"server"`
	Log      Log      `koanf:"log"`
}

// Answerer selects and configures the question-answering backend.
type Answerer struct {
	Backend    string        `koanf:"backend"`
	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	Model      string        `koanf:"model"`
	MaxRetries int           `koanf:"max_retries"`
	Timeout    time.Duration `koanf:"timeout"`
}

// Server configures `docqa serve`.
type Server struct {
	Addr      string `koanf:"addr"`
	BodyLimit string `koanf:"body_limit"`
}

// Log configures the logger.
type Log struct {
	Level string `koanf:"level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := seed()
	applyDefaults(&cfg)
	return &cfg
}

// seed holds defaults whose zero value is a valid setting. Loaded keys
// overwrite them; absent keys leave them in place.
func seed() Config {
	return Config{Answerer: Answerer{MaxRetries: defaultMaxRetries}}
}

// Path returns $XDG_CONFIG_HOME/docqa/config.yaml or ~/.config/docqa/config.yaml.
func Path() string {
	return filepath.Join(configDir(), configFileName)
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "docqa")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "docqa")
}

// Load reads the YAML file at path, then applies DOCQA_* environment
// overrides. An empty path means Path(); a missing default file is not an
// error, a missing explicit file is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = Path()
	}

	content, err := readConfigFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	// DOCQA_ANSWERER_BASE_URL -> answerer.base_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		section, field, ok := strings.Cut(key, "_")
		if !ok {
			return key
		}
		return section + "." + field
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := seed()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxFileSize)
	}
	return os.ReadFile(path)
}

func applyDefaults(cfg *Config) {
	if cfg.Answerer.Backend == "" {
		cfg.Answerer.Backend = BackendExtractive
	}
	if cfg.Answerer.Backend == BackendOpenAI && cfg.Answerer.Model == "" {
		cfg.Answerer.Model = "gpt-4o-mini"
	}
	if cfg.Answerer.Timeout == 0 {
		cfg.Answerer.Timeout = 60 * time.Second
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8080"
	}
	if cfg.Server.BodyLimit == "" {
		cfg.Server.BodyLimit = "32M"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Answerer.Backend {
	case BackendExtractive:
	case BackendOpenAI:
		if c.Answerer.APIKey == "" && c.Answerer.BaseURL == "" {
			return errors.New("answerer.api_key is required for the openai backend unless answerer.base_url points at a local server")
		}
	default:
		return fmt.Errorf("unknown answerer.backend %q (want %q or %q)", c.Answerer.Backend, BackendExtractive, BackendOpenAI)
	}
	if c.Answerer.MaxRetries < 0 {
		return fmt.Errorf("answerer.max_retries must not be negative, got %d", c.Answerer.MaxRetries)
	}
	if c.Answerer.Timeout < 0 {
		return fmt.Errorf("answerer.timeout must not be negative, got %s", c.Answerer.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}

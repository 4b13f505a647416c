package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete analyzer configuration
type Config struct {
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

// AnalysisConfig contains default filters and capital assumptions
type AnalysisConfig struct {
	CommentFilter  string `json:"comment_filter,omitempty" yaml:"comment_filter,omitempty"`
	MagicFilter    string `json:"magic_filter,omitempty" yaml:"magic_filter,omitempty"`
	CurrencySymbol string `json:"currency_symbol" yaml:"currency_symbol"`

	// AssumedCapital is only used when OverrideCapital is set or when the
	// data carries no deposits to detect the capital from.
	AssumedCapital  float64 `json:"assumed_capital" yaml:"assumed_capital"`
	OverrideCapital bool    `json:"override_capital" yaml:"override_capital"`

	GridGap string `json:"grid_gap" yaml:"grid_gap"` // e.g., "10s", "1m"
}

// StoreConfig contains run archive parameters
type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ServerConfig contains HTTP API parameters
type ServerConfig struct {
	Addr                string `json:"addr" yaml:"addr"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

// LoggingConfig contains logging parameters
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// MagicList parses the comma-separated magic filter into numbers.
// An empty filter means no magic filtering.
func (a AnalysisConfig) MagicList() ([]int64, error) {
	return ParseMagics(a.MagicFilter)
}

// ParseMagics parses a comma-separated list of magic numbers, as used in
// config files, CLI flags and query strings.
func ParseMagics(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad magic %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseGridGap converts the grid gap string to time.Duration
func (a AnalysisConfig) ParseGridGap() (time.Duration, error) {
	if a.GridGap == "" {
		return 0, nil
	}
	return time.ParseDuration(a.GridGap)
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// Load builds the configuration from defaults, an optional file (JSON or
// YAML) and PAI_* environment variables, in that order. A .env file in the
// working directory is folded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// Try YAML first, fall back to JSON
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PAI_DB"); v != "" {
		c.Store.DBPath = v
	}
	if v := os.Getenv("PAI_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PAI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PAI_LOG_PRETTY"); v == "1" || v == "true" {
		c.Logging.Pretty = true
	}
	if v := os.Getenv("PAI_CURRENCY"); v != "" {
		c.Analysis.CurrencySymbol = v
	}
	if v := os.Getenv("PAI_COMMENT_FILTER"); v != "" {
		c.Analysis.CommentFilter = v
	}
	if v := os.Getenv("PAI_MAGIC_FILTER"); v != "" {
		c.Analysis.MagicFilter = v
	}
	if v := os.Getenv("PAI_CAPITAL"); v != "" {
		var f float64
		fmt.Sscan(v, &f)
		if f > 0 {
			c.Analysis.AssumedCapital = f
		}
	}
	if v := os.Getenv("PAI_OVERRIDE_CAPITAL"); v == "1" || v == "true" {
		c.Analysis.OverrideCapital = true
	}
	if v := os.Getenv("PAI_GRID_GAP"); v != "" {
		c.Analysis.GridGap = v
	}
}

var logLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
	"panic": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !logLevels[c.Logging.Level] {
		return fmt.Errorf("unknown logging.level: %s", c.Logging.Level)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		return fmt.Errorf("server.read_timeout_seconds must be positive")
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		return fmt.Errorf("server.write_timeout_seconds must be positive")
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	if c.Analysis.AssumedCapital <= 0 {
		return fmt.Errorf("analysis.assumed_capital must be positive")
	}
	if gap, err := c.Analysis.ParseGridGap(); err != nil {
		return fmt.Errorf("analysis.grid_gap: %w", err)
	} else if gap < 0 {
		return fmt.Errorf("analysis.grid_gap must not be negative")
	}
	if _, err := c.Analysis.MagicList(); err != nil {
		return fmt.Errorf("analysis.magic_filter: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			CurrencySymbol: "€",
			AssumedCapital: 1000,
			GridGap:        "10s",
		},
		Store: StoreConfig{
			DBPath: "./pai.db",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

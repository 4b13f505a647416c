package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "€", cfg.Analysis.CurrencySymbol)
	assert.Equal(t, 1000.0, cfg.Analysis.AssumedCapital)
	assert.False(t, cfg.Analysis.OverrideCapital)
	assert.Equal(t, "./pai.db", cfg.Store.DBPath)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pai.yaml")
	data := `
analysis:
  currency_symbol: "$"
  assumed_capital: 2500
  override_capital: true
  grid_gap: 30s
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "$", cfg.Analysis.CurrencySymbol)
	assert.Equal(t, 2500.0, cfg.Analysis.AssumedCapital)
	assert.True(t, cfg.Analysis.OverrideCapital)
	assert.Equal(t, "30s", cfg.Analysis.GridGap)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unmentioned sections keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "./pai.db", cfg.Store.DBPath)
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pai.json")

	want := Default()
	want.Analysis.CommentFilter = "grid"
	want.Server.Addr = ":9090"
	require.NoError(t, want.SaveToFile(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "grid", cfg.Analysis.CommentFilter)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not config"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PAI_DB", "/tmp/env.db")
	t.Setenv("PAI_ADDR", "127.0.0.1:8123")
	t.Setenv("PAI_LOG_LEVEL", "warn")
	t.Setenv("PAI_LOG_PRETTY", "1")
	t.Setenv("PAI_CURRENCY", "£")
	t.Setenv("PAI_MAGIC_FILTER", "7,8")
	t.Setenv("PAI_CAPITAL", "5000")
	t.Setenv("PAI_OVERRIDE_CAPITAL", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.Store.DBPath)
	assert.Equal(t, "127.0.0.1:8123", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, "£", cfg.Analysis.CurrencySymbol)
	assert.Equal(t, "7,8", cfg.Analysis.MagicFilter)
	assert.Equal(t, 5000.0, cfg.Analysis.AssumedCapital)
	assert.True(t, cfg.Analysis.OverrideCapital)
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pai.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  db_path: file.db\n"), 0644))
	t.Setenv("PAI_DB", "env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Store.DBPath)
}

func TestEnvBadCapitalIgnored(t *testing.T) {
	t.Setenv("PAI_CAPITAL", "lots")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, cfg.Analysis.AssumedCapital)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeoutSeconds = 0 }, "read_timeout_seconds"},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeoutSeconds = 0 }, "write_timeout_seconds"},
		{"empty db path", func(c *Config) { c.Store.DBPath = "" }, "store.db_path"},
		{"zero capital", func(c *Config) { c.Analysis.AssumedCapital = 0 }, "assumed_capital"},
		{"bad grid gap", func(c *Config) { c.Analysis.GridGap = "soon" }, "grid_gap"},
		{"negative grid gap", func(c *Config) { c.Analysis.GridGap = "-5s" }, "grid_gap"},
		{"bad magic filter", func(c *Config) { c.Analysis.MagicFilter = "1,x" }, "magic_filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMagicList(t *testing.T) {
	a := AnalysisConfig{MagicFilter: " 7, 8 ,1412000 "}
	list, err := a.MagicList()
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8, 1412000}, list)

	a.MagicFilter = ""
	list, err = a.MagicList()
	require.NoError(t, err)
	assert.Nil(t, list)

	a.MagicFilter = "7,grid"
	_, err = a.MagicList()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `bad magic "grid"`)
}

func TestParseGridGap(t *testing.T) {
	a := AnalysisConfig{GridGap: "90s"}
	gap, err := a.ParseGridGap()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, gap)

	a.GridGap = ""
	gap, err = a.ParseGridGap()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), gap)
}

func TestServerTimeouts(t *testing.T) {
	s := ServerConfig{ReadTimeoutSeconds: 10, WriteTimeoutSeconds: 30}
	assert.Equal(t, 10*time.Second, s.ReadTimeout())
	assert.Equal(t, 30*time.Second, s.WriteTimeout())
}

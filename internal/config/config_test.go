package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/cutwatch/internal/energy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
log_level = "trace"
input_dir = "/data/logs"
tdee = 2750

[production]
log_level = "warn"
logs_path = "/var/log/cutwatch/cutwatch.log"
log_to_stdout = true
input_dir = "/srv/cutwatch/in"
output_dir = "/srv/cutwatch/out"
metrics_textfile = "/var/lib/node_exporter/cutwatch.prom"
filter_start = "2025-06-01"
window_days = 10
deficit_threshold = 7
`

const testYaml = `
development:
  input_dir: ./in
  intake_file: food.csv
  tef_rate: 0.08
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Toml(t *testing.T) {
	path := writeFile(t, "config.toml", testToml)

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, "/data/logs", cfg.InputDir)
	assert.Equal(t, "/data/logs", cfg.OutputDir)
	assert.Equal(t, "/data/logs/dailysummary.csv", cfg.IntakePath())
	assert.Equal(t, "/data/logs/exercises.csv", cfg.ExercisePath())
	assert.Equal(t, 2750.0, cfg.TDEE)
	assert.Equal(t, "2025-04-01", cfg.FilterStart)
	assert.Equal(t, 7, cfg.WindowDays)
	assert.Equal(t, 5, cfg.DeficitThreshold)

	cfg, err = Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "/srv/cutwatch/out", cfg.OutputDir)
	assert.Equal(t, "/var/lib/node_exporter/cutwatch.prom", cfg.MetricsTextfile)

	params, err := cfg.AnalysisParams()
	require.NoError(t, err)
	assert.Equal(t, energy.Params{
		FilterStart:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TDEE:             2900,
		WindowDays:       10,
		DeficitThreshold: 7,
		KcalPerLb:        3500,
		TEFRate:          0.10,
	}, params)
}

func TestLoad_Yaml(t *testing.T) {
	path := writeFile(t, "config.yaml", testYaml)

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, "in/food.csv", cfg.IntakePath())
	require.NotNil(t, cfg.TEFRate)
	assert.Equal(t, 0.08, *cfg.TEFRate)
	assert.Equal(t, 2900.0, cfg.TDEE)

	_, err = Load("prod", path)
	assert.ErrorContains(t, err, "config for env prod not found")
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("dev", "")
	require.NoError(t, err)

	params, err := cfg.AnalysisParams()
	require.NoError(t, err)
	assert.Equal(t, energy.DefaultParams(), params)
	assert.Equal(t, "dailysummary.csv", cfg.IntakePath())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("staging", writeFile(t, "config.toml", testToml))
	assert.ErrorContains(t, err, "unknown env: staging")

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "decode toml config")

	_, err = Load("dev", writeFile(t, "config.toml", "[development]\nwindow_days = 3\n"))
	assert.ErrorContains(t, err, "deficit_threshold must be in [1, 3]")

	_, err = Load("dev", writeFile(t, "config.toml", "[development]\nfilter_start = \"April\"\n"))
	assert.ErrorContains(t, err, "invalid filter_start")

	_, err = Load("dev", writeFile(t, "config.toml", "[development]\ntef_rate = -0.1\n"))
	assert.ErrorContains(t, err, "tef_rate must be in [0, 1)")
}

func TestLoad_ZeroTEFRateKept(t *testing.T) {
	cfg, err := Load("dev", writeFile(t, "config.toml", "[development]\ntef_rate = 0.0\n"))
	require.NoError(t, err)

	params, err := cfg.AnalysisParams()
	require.NoError(t, err)
	assert.Equal(t, 0.0, params.TEFRate)

	cfg, err = Load("development", writeFile(t, "config.yaml", "development:\n  tef_rate: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.TEFRate)
	assert.Equal(t, 0.0, *cfg.TEFRate)
}

func TestApplyOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", testToml)

	t.Run("output follows input flag", func(t *testing.T) {
		cfg, err := Load("dev", path)
		require.NoError(t, err)
		require.Equal(t, "/data/logs", cfg.OutputDir)

		cfg.ApplyOverrides("/logs", "")
		assert.Equal(t, "/logs", cfg.InputDir)
		assert.Equal(t, "/logs", cfg.OutputDir)
		assert.Equal(t, "/logs/dailysummary.csv", cfg.IntakePath())
	})

	t.Run("output from file is kept", func(t *testing.T) {
		cfg, err := Load("prod", path)
		require.NoError(t, err)

		cfg.ApplyOverrides("/logs", "")
		assert.Equal(t, "/logs", cfg.InputDir)
		assert.Equal(t, "/srv/cutwatch/out", cfg.OutputDir)
	})

	t.Run("output flag wins", func(t *testing.T) {
		cfg, err := Load("dev", path)
		require.NoError(t, err)

		cfg.ApplyOverrides("/logs", "/reports")
		assert.Equal(t, "/logs", cfg.InputDir)
		assert.Equal(t, "/reports", cfg.OutputDir)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg := Default()
		cfg.ApplyOverrides("", "")
		assert.Equal(t, ".", cfg.InputDir)
		assert.Equal(t, ".", cfg.OutputDir)

		cfg.ApplyOverrides("in", "")
		assert.Equal(t, "in", cfg.OutputDir)
	})
}

func ptr(v float64) *float64 {
	return &v
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(c *Config){
		"tdee":        func(c *Config) { c.TDEE = -1 },
		"window":      func(c *Config) { c.WindowDays = -7 },
		"threshold":   func(c *Config) { c.DeficitThreshold = -1 },
		"kcal per lb": func(c *Config) { c.KcalPerLb = -3500 },
		"tef rate":    func(c *Config) { c.TEFRate = ptr(1.5) },
		"no tef rate": func(c *Config) { c.TEFRate = nil },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

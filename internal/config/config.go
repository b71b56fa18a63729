package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/2beens/cutwatch/internal/energy"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntakeFile   = "dailysummary.csv"
	DefaultExerciseFile = "exercises.csv"
)

type Config struct {
	Environment string `toml:"-" yaml:"-"`
	// logging
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogsPath      string `toml:"logs_path" yaml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout" yaml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json" yaml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled" yaml:"sentry_enabled"`
	// input / output
	InputDir        string `toml:"input_dir" yaml:"input_dir"`
	OutputDir       string `toml:"output_dir" yaml:"output_dir"`
	IntakeFile      string `toml:"intake_file" yaml:"intake_file"`
	ExerciseFile    string `toml:"exercise_file" yaml:"exercise_file"`
	MetricsTextfile string `toml:"metrics_textfile" yaml:"metrics_textfile"`
	// analysis
	FilterStart      string  `toml:"filter_start" yaml:"filter_start"`
	TDEE             float64 `toml:"tdee" yaml:"tdee"`
	WindowDays       int     `toml:"window_days" yaml:"window_days"`
	DeficitThreshold int     `toml:"deficit_threshold" yaml:"deficit_threshold"`
	KcalPerLb        float64 `toml:"kcal_per_lb" yaml:"kcal_per_lb"`
	// TEFRate is a pointer so that an explicit 0 is kept.
	TEFRate *float64 `toml:"tef_rate" yaml:"tef_rate"`

	outputDirSet bool
}

type Toml struct {
	Development *Config `toml:"development" yaml:"development"`
	Production  *Config `toml:"production" yaml:"production"`
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the config of env from path. TOML is expected, unless the file has a
// .yaml or .yml extension. An empty path yields the defaults.
// Fields left out of the file keep their default values.
func Load(env, path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.Environment = normalizeEnv(env)
		return cfg, cfg.Validate()
	}

	var t Toml
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &t); err != nil {
			return nil, fmt.Errorf("decode toml config: %w", err)
		}
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s not found in %s", env, path)
	}

	cfg.withDefaults()
	cfg.Environment = normalizeEnv(env)

	return cfg, cfg.Validate()
}

func Default() *Config {
	cfg := &Config{}
	cfg.withDefaults()
	return cfg
}

func (c *Config) withDefaults() {
	defaults := energy.DefaultParams()
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.InputDir == "" {
		c.InputDir = "."
	}
	c.outputDirSet = c.OutputDir != ""
	if !c.outputDirSet {
		c.OutputDir = c.InputDir
	}
	if c.IntakeFile == "" {
		c.IntakeFile = DefaultIntakeFile
	}
	if c.ExerciseFile == "" {
		c.ExerciseFile = DefaultExerciseFile
	}
	if c.FilterStart == "" {
		c.FilterStart = defaults.FilterStart.Format(energy.DateLayout)
	}
	if c.TDEE == 0 {
		c.TDEE = defaults.TDEE
	}
	if c.WindowDays == 0 {
		c.WindowDays = defaults.WindowDays
	}
	if c.DeficitThreshold == 0 {
		c.DeficitThreshold = defaults.DeficitThreshold
	}
	if c.KcalPerLb == 0 {
		c.KcalPerLb = defaults.KcalPerLb
	}
	if c.TEFRate == nil {
		tefRate := defaults.TEFRate
		c.TEFRate = &tefRate
	}
}

func (c *Config) Validate() error {
	if _, err := time.Parse(energy.DateLayout, c.FilterStart); err != nil {
		return fmt.Errorf("invalid filter_start %q: %w", c.FilterStart, err)
	}
	if c.TDEE <= 0 {
		return errors.New("tdee must be positive")
	}
	if c.WindowDays <= 0 {
		return errors.New("window_days must be positive")
	}
	if c.DeficitThreshold <= 0 || c.DeficitThreshold > c.WindowDays {
		return fmt.Errorf("deficit_threshold must be in [1, %d]", c.WindowDays)
	}
	if c.KcalPerLb <= 0 {
		return errors.New("kcal_per_lb must be positive")
	}
	if c.TEFRate == nil || *c.TEFRate < 0 || *c.TEFRate >= 1 {
		return errors.New("tef_rate must be in [0, 1)")
	}
	return nil
}

// AnalysisParams returns the detection and aggregation constants.
func (c *Config) AnalysisParams() (energy.Params, error) {
	filterStart, err := time.Parse(energy.DateLayout, c.FilterStart)
	if err != nil {
		return energy.Params{}, fmt.Errorf("invalid filter_start %q: %w", c.FilterStart, err)
	}
	return energy.Params{
		FilterStart:      filterStart,
		TDEE:             c.TDEE,
		WindowDays:       c.WindowDays,
		DeficitThreshold: c.DeficitThreshold,
		KcalPerLb:        c.KcalPerLb,
		TEFRate:          *c.TEFRate,
	}, nil
}

// ApplyOverrides replaces the input and output folders with the non-empty
// command line values. Unless an output folder was given, in the file or here,
// outputs follow the input folder.
func (c *Config) ApplyOverrides(inputDir, outputDir string) {
	if inputDir != "" {
		c.InputDir = inputDir
		if !c.outputDirSet {
			c.OutputDir = inputDir
		}
	}
	if outputDir != "" {
		c.OutputDir = outputDir
		c.outputDirSet = true
	}
}

func (c *Config) IntakePath() string {
	return filepath.Join(c.InputDir, c.IntakeFile)
}

func (c *Config) ExercisePath() string {
	return filepath.Join(c.InputDir, c.ExerciseFile)
}

func normalizeEnv(env string) string {
	switch strings.ToLower(env) {
	case "prod", "production":
		return "production"
	default:
		return "development"
	}
}

// Package config loads, validates and saves the co2-monitor configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/carbon"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/sources"
)

const (
	configFileName = "config.yaml"
	outputTypeFile = "file"

	defaultTimeoutSeconds = 20
)

// Validation errors.
var (
	ErrInvalidStartYear   = errors.New("start year out of range")
	ErrInvalidAutoRefresh = errors.New("invalid auto-refresh interval")
	ErrInvalidTimeout     = errors.New("timeout must not be negative")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
)

// Config is the full co2-monitor configuration.
type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
	Sources   SourcesConfig   `yaml:"sources"`
	Logging   LoggingConfig   `yaml:"logging"`

	configPath string
}

// DashboardConfig holds the two domain selectors plus the auto-refresh period.
type DashboardConfig struct {
	Budget    string `yaml:"budget"`
	StartYear int    `yaml:"start_year"`
	// AutoRefresh is a Go duration string; empty disables auto-refresh.
	AutoRefresh string `yaml:"auto_refresh,omitempty"`
}

// SourcesConfig points the fetchers at their upstream files.
type SourcesConfig struct {
	ConcentrationURL string `yaml:"concentration_url"`
	EmissionsURL     string `yaml:"emissions_url"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	UserAgent        string `yaml:"user_agent,omitempty"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns a Config populated with defaults. It does not read any file.
func New() *Config {
	cfg := &Config{
		Dashboard: DashboardConfig{
			Budget:    carbon.DefaultScenario.Key(),
			StartYear: carbon.DefaultStartYear,
		},
		Sources: SourcesConfig{
			ConcentrationURL: sources.DefaultConcentrationURL,
			EmissionsURL:     sources.DefaultEmissionsURL,
			TimeoutSeconds:   defaultTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
	}
	return cfg
}

// Load reads the configuration at path on top of the defaults, applies
// environment overrides and validates the result. An empty path means the
// default location. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		cfg.configPath = path
	}

	if cfg.configPath != "" {
		if err := cfg.readFile(cfg.configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from CO2MON_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CO2MON_BUDGET"); v != "" {
		c.Dashboard.Budget = v
	}
	if v := os.Getenv("CO2MON_START_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CO2MON_START_YEAR=%q", ErrInvalidStartYear, v)
		}
		c.Dashboard.StartYear = year
	}
	if v := os.Getenv("CO2MON_AUTO_REFRESH"); v != "" {
		c.Dashboard.AutoRefresh = v
	}
	if v := os.Getenv("CO2MON_CONCENTRATION_URL"); v != "" {
		c.Sources.ConcentrationURL = v
	}
	if v := os.Getenv("CO2MON_EMISSIONS_URL"); v != "" {
		c.Sources.EmissionsURL = v
	}
	if v := os.Getenv("CO2MON_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CO2MON_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CO2MON_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	return nil
}

// Validate checks every section and returns the first problem found. The
// start year is clamped into range rather than rejected.
func (c *Config) Validate() error {
	if _, err := c.Scenario(); err != nil {
		return err
	}
	c.Dashboard.StartYear = carbon.ClampStartYear(c.Dashboard.StartYear, time.Now().Year())
	if _, err := c.AutoRefreshInterval(); err != nil {
		return err
	}
	if c.Sources.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.Sources.TimeoutSeconds)
	}
	return c.Logging.Validate()
}

// Validate checks the logging level and format.
func (lc LoggingConfig) Validate() error {
	switch strings.ToLower(lc.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, lc.Level)
	}
	switch strings.ToLower(lc.Format) {
	case "", "json", "console", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, lc.Format)
	}
	return nil
}

// Scenario parses the configured budget scenario.
func (c *Config) Scenario() (carbon.BudgetScenario, error) {
	return carbon.ParseBudgetScenario(c.Dashboard.Budget)
}

// AutoRefreshInterval returns the parsed auto-refresh period, zero when disabled.
func (c *Config) AutoRefreshInterval() (time.Duration, error) {
	if c.Dashboard.AutoRefresh == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Dashboard.AutoRefresh)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAutoRefresh, c.Dashboard.AutoRefresh)
	}
	return d, nil
}

// Timeout returns the HTTP timeout for source fetches.
func (c *Config) Timeout() time.Duration {
	if c.Sources.TimeoutSeconds <= 0 {
		return sources.DefaultTimeout
	}
	return time.Duration(c.Sources.TimeoutSeconds) * time.Second
}

// ConfigPath returns the file this config was loaded from or will be saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML to ConfigPath, creating its directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// YAML renders the config as it would be saved.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshalling config: %w", err)
	}
	return string(data), nil
}

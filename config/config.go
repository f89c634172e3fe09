package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/wordgroup/datamuse"
	"github.com/spektr-org/wordgroup/grouping"
	"github.com/spektr-org/wordgroup/render"
)

// Config holds all wordgroup configuration.
type Config struct {
	// Datamuse API client
	Datamuse DatamuseConfig `yaml:"datamuse"`

	// Grouping of rhyme sections and the group command
	Grouping GroupingConfig `yaml:"grouping"`

	// Output rendering
	Output OutputConfig `yaml:"output"`

	// Where saved words are kept
	SavedPath string `yaml:"saved_path"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatamuseConfig configures the API client.
type DatamuseConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
	Max      int    `yaml:"max"` // 0 = server default
}

// GroupingConfig configures key ordering.
type GroupingConfig struct {
	Order string `yaml:"order"` // natural, lexical
}

// OutputConfig configures rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json, pretty, csv
	Color  bool   `yaml:"color"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Dir returns the per-user configuration directory, ~/.wordgroup.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordgroup"
	}
	return filepath.Join(home, ".wordgroup")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Datamuse: DatamuseConfig{
			Endpoint: datamuse.DefaultEndpoint,
			Timeout:  datamuse.DefaultTimeout.String(),
		},
		Grouping: GroupingConfig{
			Order: grouping.OrderNatural.String(),
		},
		Output: OutputConfig{
			Format: string(render.FormatText),
			Color:  true,
		},
		SavedPath: filepath.Join(Dir(), "saved.json"),
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("WORDGROUP_ENDPOINT"); url != "" {
		c.Datamuse.Endpoint = url
	}
	if path := os.Getenv("WORDGROUP_SAVED_PATH"); path != "" {
		c.SavedPath = path
	}
	if format := os.Getenv("WORDGROUP_FORMAT"); format != "" {
		c.Output.Format = format
	}
	if max := os.Getenv("WORDGROUP_MAX"); max != "" {
		if n, err := strconv.Atoi(max); err == nil {
			c.Datamuse.Max = n
		}
	}
}

// Validate checks the values that are parsed later.
func (c *Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.Order(); err != nil {
		return fmt.Errorf("invalid grouping.order: %w", err)
	}
	if _, err := render.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format: %w", err)
	}
	if c.Datamuse.Max < 0 {
		return fmt.Errorf("invalid datamuse.max: %d", c.Datamuse.Max)
	}
	return nil
}

// Timeout parses the datamuse timeout. Empty means the client default.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Datamuse.Timeout == "" {
		return datamuse.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Datamuse.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid datamuse.timeout %q: %w", c.Datamuse.Timeout, err)
	}
	return d, nil
}

// Order parses the grouping order.
func (c *Config) Order() (grouping.Order, error) {
	return grouping.ParseOrder(c.Grouping.Order)
}

// DatamuseClientConfig converts to the client's Config.
func (c *Config) DatamuseClientConfig() (datamuse.Config, error) {
	timeout, err := c.Timeout()
	if err != nil {
		return datamuse.Config{}, err
	}
	return datamuse.Config{
		Endpoint: c.Datamuse.Endpoint,
		Timeout:  timeout,
		Max:      c.Datamuse.Max,
	}, nil
}

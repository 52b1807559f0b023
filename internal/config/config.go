// Package config holds process-wide settings of the helptext command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"pkt.systems/helptext"
)

// AppName names the configuration directory.
const AppName = "helptext"

// FileName is the configuration file looked up in the XDG config
// directories.
const FileName = "config.yaml"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// LogConfig selects logging verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the helptext command configuration.
type Config struct {
	Width      int       `yaml:"width"`
	Theme      string    `yaml:"theme"`
	OSC8       string    `yaml:"osc8"`
	LinkFooter bool      `yaml:"link_footer"`
	Log        LogConfig `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Width: helptext.DefaultWidth,
		Theme: "default",
		OSC8:  "auto",
		Log:   LogConfig{Level: "none"},
	}
}

// DefaultPath returns the configuration file found in the XDG config
// directories.
func DefaultPath() (string, bool) {
	path, err := xdg.SearchConfigFile(filepath.Join(AppName, FileName))
	if err != nil {
		return "", false
	}
	return path, true
}

// Load reads the configuration at path on top of the defaults. An empty
// path loads the file from the XDG config directories if there is one.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		found, ok := DefaultPath()
		if !ok {
			return cfg, nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return unmarshalConfig(data, cfg)
}

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// Unknown keys are errors, so yaml.Unmarshal cannot be used.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Width < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: width %d is negative", ErrInvalidConfig, c.Width))
	}
	if _, ok := helptext.ThemeByName(c.Theme); !ok {
		err = multierr.Append(err, fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme))
	}
	switch c.OSC8 {
	case "auto", "on", "off":
	default:
		err = multierr.Append(err, fmt.Errorf("%w: osc8 must be auto, on or off, not %q", ErrInvalidConfig, c.OSC8))
	}
	switch c.Log.Level {
	case "none", "normal", "debug":
	default:
		err = multierr.Append(err, fmt.Errorf("%w: log level must be none, normal or debug, not %q", ErrInvalidConfig, c.Log.Level))
	}
	return err
}

// Dump returns the configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

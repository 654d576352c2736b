// ABOUTME: eci2ecef configuration management
// ABOUTME: Layers defaults, an optional YAML file and ECI2ECEF_ env vars

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/storage"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. ECI2ECEF_MODEL.
const EnvPrefix = "ECI2ECEF_"

// historyDBFilename is the SQLite database filename inside the data directory.
const historyDBFilename = "history.db"

// Config stores eci2ecef configuration.
type Config struct {
	// Model selects the GMST model: "legacy" (default) or "iau82".
	Model string `koanf:"model" yaml:"model"`

	// DataDir is the root directory for the conversion history database.
	// Supports ~ expansion. Defaults to ~/.local/share/eci2ecef.
	DataDir string `koanf:"data_dir" yaml:"data_dir,omitempty"`

	// Record stores every successful conversion in the history database.
	Record bool `koanf:"record" yaml:"record"`

	// Debug enables the development logger on stderr.
	Debug bool `koanf:"debug" yaml:"debug"`

	// HTTPAddr is the listen address for the serve command.
	HTTPAddr string `koanf:"http_addr" yaml:"http_addr"`
}

// DefaultHTTPAddr is the serve command's listen address when none is configured.
const DefaultHTTPAddr = "127.0.0.1:8080"

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Model:    string(frames.ModelLegacy),
		HTTPAddr: DefaultHTTPAddr,
	}
}

// GetModel returns the configured GMST model.
func (c *Config) GetModel() (frames.Model, error) {
	return frames.ParseModel(c.Model)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// DatabasePath returns the history database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.GetDataDir(), historyDBFilename)
}

// OpenStorage opens the history database.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return storage.NewSQLiteDB(c.DatabasePath())
}

// defaultDataDir returns the default XDG data directory for eci2ecef.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "eci2ecef")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "eci2ecef", "config.yaml")
}

// Load builds a Config by layering defaults, the YAML file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file: path, or GetConfigPath() when path is empty
//  3. env (prefix ECI2ECEF_)
//
// A missing default config file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}
	switch _, err := os.Stat(path); {
	case err == nil:
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// ECI2ECEF_DATA_DIR -> data_dir
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if _, err := cfg.GetModel(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound indicates that the requested config file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Defaults for the no-argument invocation.
const (
	DefaultDataDir      = "data"
	DefaultDatabasePath = "ecom.db"
	DefaultConfigFile   = "ecom-loader.yaml"
)

// Config carries the paths the pipeline operates on
type Config struct {
	DataDir      string `yaml:"data_dir"`
	DatabasePath string `yaml:"database_path"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DataDir:      DefaultDataDir,
		DatabasePath: DefaultDatabasePath,
	}
}

// LoadFile reads a YAML config file
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve merges configuration sources into the effective config.
// Precedence: flag overrides > environment variables > config file > defaults.
// The default config file is optional; a file named explicitly must exist.
func Resolve(overrides Config, configFile string) (Config, error) {
	cfg := Default()

	path := configFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	fileCfg, err := LoadFile(path)
	switch {
	case err == nil:
		merge(&cfg, fileCfg)
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		// No optional config file; defaults stand
	default:
		return Config{}, err
	}

	merge(&cfg, Config{
		DataDir:      os.Getenv("ECOM_DATA_DIR"),
		DatabasePath: os.Getenv("ECOM_DB_PATH"),
		LogLevel:     os.Getenv("ECOM_LOG_LEVEL"),
	})

	merge(&cfg, overrides)

	return cfg, nil
}

func merge(dst *Config, src Config) {
	if src.DataDir != "" {
		dst.DataDir = src.DataDir
	}
	if src.DatabasePath != "" {
		dst.DatabasePath = src.DatabasePath
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

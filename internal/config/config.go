package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Limits  LimitsConfig  `yaml:"limits" envconfig:"LIMITS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	SourceFile string `yaml:"source_file" envconfig:"SOURCE_FILE" default:"data/valores.xlsx" validate:"required"`
	RatesFile  string `yaml:"rates_file" envconfig:"RATES_FILE" default:"data/rates.toml"`
	ExportDir  string `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"exports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// LimitsConfig contains request limiting configuration
type LimitsConfig struct {
	RateLimitEnabled bool    `yaml:"rate_limit_enabled" envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RPS              float64 `yaml:"rps" envconfig:"RPS" default:"50" validate:"min=0"`
	Burst            int     `yaml:"burst" envconfig:"BURST" default:"25" validate:"min=0"`
}

// Load loads configuration from environment variables and an optional YAML
// config file. File values overlay what the environment produced.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ASSETPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := overlayFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overlayFromFile merges YAML file values over the current configuration
func overlayFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths converts relative paths to absolute, anchored at the
// working directory
func (c *Config) resolvePaths() error {
	for _, p := range []*string{
		&c.Paths.SourceFile,
		&c.Paths.RatesFile,
		&c.Paths.ExportDir,
		&c.Paths.LogsDir,
	} {
		if *p == "" || filepath.IsAbs(*p) {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("resolve path %q: %w", *p, err)
		}
		*p = abs
	}
	if c.Logging.FilePath != "" && !filepath.IsAbs(c.Logging.FilePath) {
		abs, err := filepath.Abs(c.Logging.FilePath)
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		c.Logging.FilePath = abs
	}
	return nil
}

// validate runs struct validation over the loaded configuration
func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// FileExists reports whether the given path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Medium names accepted in Config.Medium.
const (
	MediumFile   = "file"
	MediumSQLite = "sqlite"
	MediumMemory = "memory"
)

// Persistence modes accepted in Config.Persistence.
const (
	PersistImmediate = "immediate"
	PersistDeferred  = "deferred"
)

const (
	defaultNamespace     = "kindred"
	defaultFlushInterval = 500 * time.Millisecond
	defaultVerbosity     = "normal"
)

// Config holds kindred settings. It is read from a YAML file and then
// overridden by command line flags.
type Config struct {
	// Namespace prefixes every persisted key (<ns>-db-v1, <ns>-active, ...)
	Namespace string `yaml:"namespace" json:"namespace" validate:"required,excludesall=/\\"`

	// DataDir holds the storage medium files
	DataDir string `yaml:"data_dir" json:"data_dir" validate:"required"`

	// Medium selects the durable key/value backend
	Medium string `yaml:"medium" json:"medium" validate:"oneof=file sqlite memory"`

	// Persistence selects when cell writes reach the medium
	Persistence   string        `yaml:"persistence" json:"persistence" validate:"oneof=immediate deferred"`
	FlushInterval time.Duration `yaml:"flush_interval" json:"flush_interval" validate:"gte=0"`

	// Logging
	LogDir    string `yaml:"log_dir" json:"log_dir"`
	Verbosity string `yaml:"verbosity" json:"verbosity" validate:"oneof=quiet normal verbose debug"`
}

// DefaultDataDir returns ~/.kindred.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".kindred"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Namespace == "" {
		c.Namespace = defaultNamespace
	}
	if c.DataDir == "" {
		if dir, err := DefaultDataDir(); err == nil {
			c.DataDir = dir
		} else {
			c.DataDir = ".kindred"
		}
	}
	if c.Medium == "" {
		c.Medium = MediumFile
	}
	if c.Persistence == "" {
		c.Persistence = PersistImmediate
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = defaultFlushInterval
	}
	if c.Verbosity == "" {
		c.Verbosity = defaultVerbosity
	}
}

// Load reads a YAML config file. A missing file yields Default(); unset
// fields are filled with defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Key returns the namespaced storage key for a slot name.
func (c *Config) Key(slot string) string {
	return c.Namespace + "-" + slot
}

var validate = validator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "excludesall":
		return fmt.Sprintf("%s must not contain path separators", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

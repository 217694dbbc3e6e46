// Package config loads the lessonplan configuration: defaults, then an
// optional YAML file, then LESSONPLAN_* environment variables. Command-line
// flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/llm"
	"github.com/omegalab/lessonplan/internal/logging"
	"github.com/omegalab/lessonplan/internal/store"
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "LESSONPLAN_CONFIG"

// Config holds the complete lessonplan configuration.
type Config struct {
	LLM        llm.Config        `yaml:"llm"`
	Generation lessonplan.Config `yaml:"generation"`
	Server     ServerConfig      `yaml:"server"`
	Logging    logging.Config    `yaml:"logging"`
	Export     ExportConfig      `yaml:"export"`
	Database   DatabaseConfig    `yaml:"database"`
}

// ServerConfig holds HTTP server settings for `lessonplan serve`.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
}

// ExportConfig controls where exported plans are written.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format" validate:"omitempty,oneof=html markdown md"`
}

// DatabaseConfig holds the LLM event store location. An empty path means
// the per-user default.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	gen := lessonplan.DefaultConfig()
	return Config{
		LLM:        llm.DefaultConfig(),
		Generation: gen,
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: gen.Timeout + 30*time.Second,
		},
		Logging: logging.DefaultConfig(),
		Export: ExportConfig{
			Format: "html",
		},
	}
}

// Load builds the configuration. path wins over $LESSONPLAN_CONFIG; with
// neither set, <config dir>/lessonplan/config.yaml is read if present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvConfigFile); p != "" {
			path, explicit = p, true
		} else if p, err := DefaultFile(); err == nil {
			path = p
		}
	}

	if path != "" {
		err := loadFile(path, &cfg)
		switch {
		case err == nil:
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultFile returns the per-user config file path.
func DefaultFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "lessonplan", "config.yaml"), nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.LLM.ApplyEnv()

	if v := os.Getenv("LESSONPLAN_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LESSONPLAN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LESSONPLAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LESSONPLAN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LESSONPLAN_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("LESSONPLAN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Generation.Timeout = d
		}
	}
	if v := os.Getenv("LESSONPLAN_DB"); v != "" {
		cfg.Database.Path = v
	}
}

// FieldError describes one invalid setting.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every invalid setting.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msg := "invalid configuration:"
	for _, f := range e.Fields {
		msg += fmt.Sprintf(" %s (%s)", f.Field, f.Rule)
	}
	return msg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings that would prevent startup. A missing LLM
// credential is not one of them: it is reported to the user at generation
// time instead.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Namespace(), Rule: fe.Tag()})
	}
	return out
}

// DBPath resolves the event store path, creating its directory.
func (c Config) DBPath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, store.EnsureDir(c.Database.Path)
	}
	return store.DefaultDBPath()
}

// ExportDir resolves the export directory, defaulting to
// <data dir>/exports.
func (c Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return c.Export.Dir, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

// LogFile resolves the TUI log file path.
func (c Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lessonplan.log"), nil
}

// Package config resolves ytf settings from .env, config.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gauthierbraillon/ytf/internal/storage"
)

// FileName is the optional settings file inside the config directory.
const FileName = "config.yaml"

const (
	DefaultStorage  = storage.KindFile
	DefaultAddr     = "127.0.0.1:8787"
	DefaultLogLevel = "info"
)

// Config is the resolved configuration.
type Config struct {
	ConfigDir string `yaml:"-"`
	DataDir   string `yaml:"data_dir"`
	Storage   string `yaml:"storage"`
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
}

// Dir returns the configuration directory path.
func Dir() string {
	if dir := os.Getenv("YTF_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ytf")
}

// Load resolves the configuration. Precedence, highest first: environment
// (including values from the given .env files, which never override
// variables already set), config.yaml, defaults. Missing files are skipped.
// With no envFiles, ".env" in the working directory is tried.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{ConfigDir: Dir()}

	path := filepath.Join(cfg.ConfigDir, FileName)
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's own config
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	override(&cfg.DataDir, "YTF_DATA_DIR")
	override(&cfg.Storage, "YTF_STORAGE")
	override(&cfg.Addr, "YTF_ADDR")
	override(&cfg.LogLevel, "YTF_LOG_LEVEL")

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func override(field *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*field = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = cfg.ConfigDir
	}
	if cfg.Storage == "" {
		cfg.Storage = DefaultStorage
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.Storage = strings.ToLower(cfg.Storage)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
}

func validate(cfg *Config) error {
	switch cfg.Storage {
	case storage.KindFile, storage.KindSQLite, storage.KindMemory:
	default:
		return fmt.Errorf("invalid storage %q: must be 'file', 'sqlite' or 'memory'", cfg.Storage)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

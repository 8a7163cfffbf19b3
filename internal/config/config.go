// Package config loads the gravity-note TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gravity-note/gravity-note/internal/model"
)

const (
	EnvConfig = "GRAVITY_NOTE_CONFIG"
	EnvDB     = "GRAVITY_NOTE_DB"
	EnvUser   = "GRAVITY_NOTE_USER"
)

type Config struct {
	DBPath string       `toml:"db_path"`
	UserID string       `toml:"user_id"`
	Search SearchConfig `toml:"search"`
	Log    LogConfig    `toml:"log"`
}

type SearchConfig struct {
	MaxResults      int  `toml:"max_results"`
	GroupByTime     bool `toml:"group_by_time"`
	ShowEmptyGroups bool `toml:"show_empty_groups"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DBPath: filepath.Join(dir, "notes.db"),
		UserID: defaultUser(),
		Search: SearchConfig{
			MaxResults:  model.DefaultMaxResults,
			GroupByTime: true,
		},
		Log: LogConfig{Level: "info"},
	}, nil
}

// DefaultDir returns ~/.gravity-note.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(home, ".gravity-note"), nil
}

// DefaultPath returns $GRAVITY_NOTE_CONFIG, or config.toml in DefaultDir.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path, filling unset keys with defaults and then
// applying environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		// decoding over the defaults keeps keys the file omits
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}
	}

	cfg.applyEnv()
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = model.DefaultMaxResults
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUser)); v != "" {
		c.UserID = v
	}
}

// Save writes c to path, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the search section into operation options.
func (c *Config) Options() model.UnifiedNotesOptions {
	return model.UnifiedNotesOptions{
		MaxResults:      c.Search.MaxResults,
		GroupByTime:     c.Search.GroupByTime,
		ShowEmptyGroups: c.Search.ShowEmptyGroups,
	}
}

func defaultUser() string {
	for _, k := range []string{"USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return "default"
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

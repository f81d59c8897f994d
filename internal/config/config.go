// Package config loads gtd settings from hardcoded defaults, an optional
// YAML file and GTD_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GTD_"

// Config defines gtd configuration.
type Config struct {
	Workspace WorkspaceConfig `koanf:"workspace"`
	DB        DBConfig        `koanf:"db"`
	Log       LogConfig       `koanf:"log"`
	Git       GitConfig       `koanf:"git"`
}

type WorkspaceConfig struct {
	Root string `koanf:"root"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type GitConfig struct {
	Enabled           bool   `koanf:"enabled"`
	AuthorName        string `koanf:"author_name"`
	AuthorEmail       string `koanf:"author_email"`
	RollbackOnFailure bool   `koanf:"rollback_on_failure"`
}

var defaults = map[string]any{
	"workspace.root":          "~/.openclaw/workspace",
	"log.level":               "info",
	"log.format":              "console",
	"git.enabled":             true,
	"git.author_name":         "gtd",
	"git.author_email":        "gtd@localhost",
	"git.rollback_on_failure": true,
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gtd", "config.yaml")
}

// Load reads configuration. An explicit path must exist; the default path
// is optional. GTD_CONFIG_PATH overrides an empty path.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(envPrefix + "CONFIG_PATH"); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath()
		}
	}

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			if err := k.Set(key, value); err != nil {
				return Config{}, fmt.Errorf("set default %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	root, err := expandHome(cfg.Workspace.Root)
	if err != nil {
		return Config{}, err
	}
	cfg.Workspace.Root = root

	if cfg.DB.Path == "" {
		cfg.DB.Path = filepath.Join(cfg.Workspace.Root, ".gtd", "state.db")
	} else if cfg.DB.Path, err = expandHome(cfg.DB.Path); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if c.Workspace.Root == "" {
		return fmt.Errorf("workspace.root is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	return nil
}

// envKey maps GTD_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if key == "config_path" {
		return ""
	}
	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + field
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

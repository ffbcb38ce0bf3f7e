// Package config loads .envlens.yaml, the optional per-workspace
// settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/envlens/envlens/internal/storage"
)

const (
	// WorkspaceFile is looked up at the scan root.
	WorkspaceFile = ".envlens.yaml"

	// ConfigDirEnv overrides the user-level config directory.
	ConfigDirEnv = "ENVLENS_CONFIG_DIR"

	configSubdir = "envlens"
)

// Config is the tool configuration. The zero value is a usable
// default.
type Config struct {
	Scan   ScanConfig   `yaml:"scan,omitempty"`
	Backup BackupConfig `yaml:"backup,omitempty"`
}

type ScanConfig struct {
	ExcludeDirs  []string `yaml:"exclude_dirs,omitempty"`
	ExcludeFiles []string `yaml:"exclude_files,omitempty"`
}

type BackupConfig struct {
	// Enabled makes every save copy the file aside first, as if
	// --backup were always passed.
	Enabled bool `yaml:"enabled"`
}

// ConfigDir returns the user-level config directory.
func ConfigDir() string {
	if d := os.Getenv(ConfigDirEnv); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return filepath.Join(".", configSubdir)
	}
	return filepath.Join(home, ".config", configSubdir)
}

// Load merges the user-level config with the workspace file at root.
// Workspace settings win. Missing files are fine; a malformed file is
// an error.
func Load(root string) (*Config, error) {
	cfg := &Config{}

	user := storage.NewYAMLFile(filepath.Join(ConfigDir(), "config.yaml"))
	if err := user.LoadOrCreate(cfg); err != nil {
		return nil, fmt.Errorf("user config: %w", err)
	}

	ws := storage.NewYAMLFile(filepath.Join(root, WorkspaceFile))
	if err := ws.LoadOrCreate(cfg); err != nil {
		return nil, fmt.Errorf("workspace config: %w", err)
	}

	return cfg, nil
}

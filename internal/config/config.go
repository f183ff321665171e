// ABOUTME: Application configuration with backend selection
// ABOUTME: JSON config file under XDG_CONFIG_HOME plus a storage factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baptistelechat/geomark/internal/storage"
)

// Config stores geomark configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. Badger keeps its
	// key-value store here, SQLite puts geomark.db here. Supports ~
	// expansion. Defaults to ~/.local/share/geomark.
	DataDir string `json:"data_dir,omitempty"`

	// GeocodeURL overrides the address search service base URL.
	GeocodeURL string `json:"geocode_url,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "badger"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
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

// OpenStorage creates a Repository implementation based on the
// configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch backend := c.GetBackend(); backend {
	case "badger":
		return storage.NewBadgerStore(dataDir)
	case "sqlite":
		return storage.NewSQLiteStore(filepath.Join(dataDir, "geomark.db"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "geomark", "config.json")
}

// Load reads config from disk. A missing file yields the defaults and
// writes them back so the user has a file to edit.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk atomically.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.json")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

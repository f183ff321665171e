// ABOUTME: Tests for configuration loading and the storage factory
// ABOUTME: Uses XDG env overrides to keep everything in temp dirs

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.GetBackend() != "badger" {
		t.Errorf("default backend = %q, want badger", cfg.GetBackend())
	}
	if cfg.GetDataDir() == "" {
		t.Error("default data dir should not be empty")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if got := ExpandPath("~/maps"); got != filepath.Join(home, "maps") {
		t.Errorf("got %q", got)
	}
	if got := ExpandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("absolute paths must pass through, got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("empty path must pass through, got %q", got)
	}
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if cfg.GetBackend() != "badger" {
		t.Errorf("first-run backend = %q, want badger", cfg.GetBackend())
	}
	if _, err := os.Stat(GetConfigPath()); err != nil {
		t.Errorf("first run should write a config file: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := &Config{Backend: "sqlite", DataDir: "/tmp/geomark-test"}
	if err := want.Save(); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if got.Backend != "sqlite" || got.DataDir != "/tmp/geomark-test" {
		t.Errorf("config did not round-trip: %+v", got)
	}
}

func TestOpenStorage(t *testing.T) {
	for _, backend := range []string{"badger", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := &Config{Backend: backend, DataDir: t.TempDir()}
			repo, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("failed to open %s backend: %v", backend, err)
			}
			defer func() { _ = repo.Close() }()

			state, err := repo.LoadState()
			if err != nil {
				t.Fatalf("failed to load state: %v", err)
			}
			if len(state.Points) != 0 {
				t.Error("fresh backend should be empty")
			}
		})
	}
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "postgres"}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

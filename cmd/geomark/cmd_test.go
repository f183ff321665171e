// ABOUTME: Tests for CLI commands
// ABOUTME: Exercises add, remove, export, import, backup, and visibility

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baptistelechat/geomark/internal/config"
	"github.com/baptistelechat/geomark/internal/export"
	"github.com/baptistelechat/geomark/internal/storage"
	"github.com/baptistelechat/geomark/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// testEnv wires the command globals to a temporary badger store.
func testEnv(t *testing.T) {
	t.Helper()
	dataDir := t.TempDir()

	var err error
	cfg = &config.Config{Backend: "badger", DataDir: dataDir}
	repo, err = storage.NewBadgerStore(dataDir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	log = zerolog.Nop()
	st, err = store.New(repo, log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		if repo != nil {
			_ = repo.Close()
			repo = nil
		}
	})
}

// run invokes a command's RunE with fresh flag values.
func run(t *testing.T, cmd *cobra.Command, flags map[string]string, args ...string) error {
	t.Helper()
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("failed to set --%s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		for name := range flags {
			_ = cmd.Flags().Set(name, cmd.Flags().Lookup(name).DefValue)
		}
	})
	return cmd.RunE(cmd, args)
}

func TestRootCmd_Metadata(t *testing.T) {
	if rootCmd.Use != "geomark" {
		t.Errorf("expected Use 'geomark', got %q", rootCmd.Use)
	}
}

func TestAddCmd(t *testing.T) {
	testEnv(t)

	err := run(t, addCmd, map[string]string{"icon": "star", "notes": "Champ de Mars"},
		"Tour Eiffel", "48.8584", "2.2945")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	points := st.Points()
	if len(points) != 1 || points[0].Title != "Tour Eiffel" || points[0].Icon != "star" {
		t.Errorf("unexpected points: %+v", points)
	}
}

func TestAddCmd_Invalid(t *testing.T) {
	testEnv(t)

	if err := run(t, addCmd, nil, "Too far", "91", "0"); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
	if err := run(t, addCmd, nil, "Bad", "abc", "0"); err == nil {
		t.Error("expected error for unparseable latitude")
	}
	if err := run(t, addCmd, map[string]string{"icon": "dragon"}, "Bad icon", "48", "2"); err == nil {
		t.Error("expected error for unknown icon")
	}
}

func TestRemoveCmd(t *testing.T) {
	testEnv(t)

	if err := run(t, addCmd, nil, "A", "1", "1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := st.Points()[0].ID

	if err := run(t, removeCmd, nil, id); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(st.Points()) != 0 {
		t.Error("point not removed")
	}

	if err := run(t, removeCmd, nil, "ghost"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	testEnv(t)
	workDir := t.TempDir()

	if err := run(t, addCmd, nil, "Tour Eiffel", "48.8584", "2.2945"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	outFile := filepath.Join(workDir, "out.json")
	if err := run(t, exportCmd, map[string]string{"format": "json", "output": outFile}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	st.ClearPoints()
	if err := run(t, importCmd, map[string]string{"mode": "merge"}, outFile); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(st.Points()) != 1 || st.Points()[0].Title != "Tour Eiffel" {
		t.Errorf("round-trip lost the point: %+v", st.Points())
	}
}

func TestImportCmd_ReplaceWritesBackup(t *testing.T) {
	testEnv(t)
	workDir := t.TempDir()

	if err := run(t, addCmd, nil, "Old", "1", "1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	outFile := filepath.Join(workDir, "out.json")
	if err := run(t, exportCmd, map[string]string{"format": "json", "output": outFile}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if err := run(t, importCmd, map[string]string{"mode": "replace"}, outFile); err != nil {
		t.Fatalf("replace import failed: %v", err)
	}

	backups, err := filepath.Glob(filepath.Join(cfg.GetDataDir(), "pre-import-*.yaml"))
	if err != nil || len(backups) == 0 {
		t.Error("replace import must leave a safety backup in the data dir")
	}
}

func TestImportCmd_ReplaceAbortsWhenBackupFails(t *testing.T) {
	testEnv(t)
	workDir := t.TempDir()

	if err := run(t, addCmd, nil, "Precious", "1", "1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	outFile := filepath.Join(workDir, "out.json")
	if err := run(t, exportCmd, map[string]string{"format": "json", "output": outFile}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Point the data dir below a regular file so the backup write fails.
	blocker := filepath.Join(workDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to create blocker: %v", err)
	}
	cfg.DataDir = filepath.Join(blocker, "sub")

	err := run(t, importCmd, map[string]string{"mode": "replace"}, outFile)
	if !errors.Is(err, export.ErrBackupFailed) {
		t.Errorf("got %v, want ErrBackupFailed", err)
	}
	if len(st.Points()) != 1 || st.Points()[0].Title != "Precious" {
		t.Error("a failed backup must leave the state untouched")
	}
}

func TestBackupRestoreCmds(t *testing.T) {
	testEnv(t)
	backupFile := filepath.Join(t.TempDir(), "backup.yaml")

	if err := run(t, addCmd, nil, "A", "1", "1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, backupCmd, nil, backupFile); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	st.ClearPoints()
	if err := run(t, restoreCmd, map[string]string{"confirm": "true"}, backupFile); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if len(st.Points()) != 1 {
		t.Error("restore did not bring the point back")
	}
}

func TestVisibilityCmds(t *testing.T) {
	testEnv(t)

	if err := run(t, hideCmd, nil, "features"); err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	if st.ShowFeatures() {
		t.Error("features layer should be hidden")
	}
	if err := run(t, showCmd, nil, "features"); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !st.ShowFeatures() {
		t.Error("features layer should be shown")
	}

	if err := run(t, hideCmd, nil, "roads"); err == nil {
		t.Error("expected error for unknown layer")
	}
}

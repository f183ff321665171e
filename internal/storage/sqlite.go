// ABOUTME: SQLite storage implementation for annotation data
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baptistelechat/geomark/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository with a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteStore implements Repository.
var _ Repository = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// migrate creates or updates the database schema.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS points (
			seq INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			title TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS features (
			seq INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			geometry TEXT NOT NULL,
			properties TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadState reads the annotation snapshot, preserving insertion order.
func (s *SQLiteStore) LoadState() (State, error) {
	state := EmptyState()

	rows, err := s.db.Query(`
		SELECT id, lat, lng, title, notes, url, color, icon, created_at, updated_at
		FROM points ORDER BY seq`)
	if err != nil {
		return State{}, fmt.Errorf("query points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p models.MapPoint
		err := rows.Scan(&p.ID, &p.Lat, &p.Lng, &p.Title, &p.Notes, &p.URL,
			&p.Color, &p.Icon, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return State{}, fmt.Errorf("scan point: %w", err)
		}
		state.Points = append(state.Points, p)
	}
	if err := rows.Err(); err != nil {
		return State{}, err
	}

	frows, err := s.db.Query(`SELECT geometry, properties FROM features ORDER BY seq`)
	if err != nil {
		return State{}, fmt.Errorf("query features: %w", err)
	}
	defer func() { _ = frows.Close() }()

	for frows.Next() {
		var geomJSON, propsJSON string
		if err := frows.Scan(&geomJSON, &propsJSON); err != nil {
			return State{}, fmt.Errorf("scan feature: %w", err)
		}
		f := models.Feature{Type: "Feature"}
		if err := json.Unmarshal([]byte(geomJSON), &f.Geometry); err != nil {
			return State{}, fmt.Errorf("decode feature geometry: %w", err)
		}
		if err := json.Unmarshal([]byte(propsJSON), &f.Properties); err != nil {
			return State{}, fmt.Errorf("decode feature properties: %w", err)
		}
		state.Features = append(state.Features, f)
	}
	if err := frows.Err(); err != nil {
		return State{}, err
	}

	state.ShowPoints = s.boolSetting("showPoints", true)
	state.ShowFeatures = s.boolSetting("showFeatures", true)
	return state, nil
}

// SaveState replaces the annotation snapshot in a single transaction.
func (s *SQLiteStore) SaveState(state State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM points; DELETE FROM features;"); err != nil {
		return fmt.Errorf("clear tables: %w", err)
	}

	for i, p := range state.Points {
		_, err := tx.Exec(`
			INSERT INTO points (seq, id, lat, lng, title, notes, url, color, icon, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, p.ID, p.Lat, p.Lng, p.Title, p.Notes, p.URL, p.Color, p.Icon,
			p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert point %s: %w", p.ID, err)
		}
	}

	for i, f := range state.Features {
		geomJSON, err := json.Marshal(f.Geometry)
		if err != nil {
			return fmt.Errorf("encode feature geometry: %w", err)
		}
		propsJSON, err := json.Marshal(f.Properties)
		if err != nil {
			return fmt.Errorf("encode feature properties: %w", err)
		}
		_, err = tx.Exec(`INSERT INTO features (seq, id, geometry, properties) VALUES (?, ?, ?, ?)`,
			i, f.ID(), string(geomJSON), string(propsJSON))
		if err != nil {
			return fmt.Errorf("insert feature %s: %w", f.ID(), err)
		}
	}

	if err := setSetting(tx, "showPoints", state.ShowPoints); err != nil {
		return err
	}
	if err := setSetting(tx, "showFeatures", state.ShowFeatures); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadOnboarding reads the guided-tour snapshot.
func (s *SQLiteStore) LoadOnboarding() (Onboarding, error) {
	return Onboarding{
		OnboardingCompleted: s.boolSetting("onboardingCompleted", false),
	}, nil
}

// SaveOnboarding replaces the guided-tour snapshot.
func (s *SQLiteStore) SaveOnboarding(ob Onboarding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := setSetting(tx, "onboardingCompleted", ob.OnboardingCompleted); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) boolSetting(key string, fallback bool) bool {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return fallback
	}
	return value == "true"
}

func setSetting(tx *sql.Tx, key string, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	_, err := tx.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, str)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

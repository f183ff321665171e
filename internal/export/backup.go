// ABOUTME: YAML backup format for full annotation snapshots
// ABOUTME: Versioned and tool-tagged so restores reject foreign files

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/baptistelechat/geomark/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// backupTool tags backups so restores can reject files written by
// other programs.
const backupTool = "geomark"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string          `yaml:"version"`
	ExportedAt time.Time       `yaml:"exported_at"`
	Tool       string          `yaml:"tool"`
	Points     []PointBackup   `yaml:"points"`
	Features   []FeatureBackup `yaml:"features"`
}

// PointBackup represents a labeled point in the backup format.
type PointBackup struct {
	ID        string  `yaml:"id"`
	Lat       float64 `yaml:"lat"`
	Lng       float64 `yaml:"lng"`
	Title     string  `yaml:"title"`
	Notes     string  `yaml:"notes,omitempty"`
	URL       string  `yaml:"url,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	Icon      string  `yaml:"icon,omitempty"`
	CreatedAt int64   `yaml:"created_at"`
	UpdatedAt int64   `yaml:"updated_at"`
}

// FeatureBackup represents a drawn feature in the backup format. The
// GeoJSON document is kept verbatim so geometry survives byte-exact.
type FeatureBackup struct {
	ID      string `yaml:"id"`
	GeoJSON string `yaml:"geojson"`
}

// ExportToYAML serializes both collections into the backup format.
func ExportToYAML(points []models.MapPoint, features []models.Feature) ([]byte, error) {
	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       backupTool,
		Points:     make([]PointBackup, len(points)),
		Features:   make([]FeatureBackup, len(features)),
	}

	for i, p := range points {
		backup.Points[i] = PointBackup{
			ID:        p.ID,
			Lat:       p.Lat,
			Lng:       p.Lng,
			Title:     p.Title,
			Notes:     p.Notes,
			URL:       p.URL,
			Color:     p.Color,
			Icon:      p.Icon,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}

	for i, f := range features {
		doc, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encode feature %s: %w", f.ID(), err)
		}
		backup.Features[i] = FeatureBackup{ID: f.ID(), GeoJSON: string(doc)}
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML parses a backup, rejecting unknown versions and
// files written by other tools. Unlike the CSV/JSON importers this is
// strict: a backup is trusted data and any damage is an error.
func ImportFromYAML(data []byte) ([]models.MapPoint, []models.Feature, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return nil, nil, fmt.Errorf("unsupported backup version: %s (expected %s)",
			backup.Version, BackupVersion)
	}
	if backup.Tool != backupTool {
		return nil, nil, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, backupTool)
	}

	points := make([]models.MapPoint, len(backup.Points))
	for i, pb := range backup.Points {
		points[i] = models.MapPoint{
			ID:        pb.ID,
			Lat:       pb.Lat,
			Lng:       pb.Lng,
			Title:     pb.Title,
			Notes:     pb.Notes,
			URL:       pb.URL,
			Color:     pb.Color,
			Icon:      pb.Icon,
			CreatedAt: pb.CreatedAt,
			UpdatedAt: pb.UpdatedAt,
		}
	}

	features := make([]models.Feature, len(backup.Features))
	for i, fb := range backup.Features {
		var f models.Feature
		if err := json.Unmarshal([]byte(fb.GeoJSON), &f); err != nil {
			return nil, nil, fmt.Errorf("decode feature %s: %w", fb.ID, err)
		}
		features[i] = f
	}

	return points, features, nil
}

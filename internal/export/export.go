// ABOUTME: Export writers for annotation data
// ABOUTME: Produces CSV, JSON, and a ZIP bundling both

package export

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/baptistelechat/geomark/internal/models"
)

// csvHeader is the fixed column set shared by points and features.
// Point rows fill the flat columns; feature rows embed their
// properties and geometry as JSON in the last two.
var csvHeader = []string{
	"type", "id", "title", "lat", "lng", "notes", "url",
	"createdAt", "updatedAt", "properties", "geometry",
}

// Document is the JSON export payload: both collections under their
// own key, matching the persisted state layout.
type Document struct {
	Points   []models.MapPoint `json:"points"`
	Features []models.Feature  `json:"features"`
}

// Filename builds the conventional export name for the given
// extension, e.g. "geomark-2026-08-28_14-30-05.csv".
func Filename(ext string, t time.Time) string {
	return fmt.Sprintf("geomark-%s.%s", t.Format("2006-01-02_15-04-05"), ext)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes both collections as CSV rows under a shared header.
func WriteCSV(w io.Writer, points []models.MapPoint, features []models.Feature) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range points {
		row := []string{
			"Point", p.ID, p.Title,
			formatFloat(p.Lat), formatFloat(p.Lng),
			p.Notes, p.URL,
			strconv.FormatInt(p.CreatedAt, 10),
			strconv.FormatInt(p.UpdatedAt, 10),
			"", "",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write point %s: %w", p.ID, err)
		}
	}

	for _, f := range features {
		props, err := json.Marshal(f.Properties)
		if err != nil {
			return fmt.Errorf("encode properties for %s: %w", f.ID(), err)
		}
		geom, err := json.Marshal(f.Geometry)
		if err != nil {
			return fmt.Errorf("encode geometry for %s: %w", f.ID(), err)
		}
		row := []string{
			"Feature", f.ID(), f.Properties.Name,
			"", "", "", "",
			strconv.FormatInt(f.Properties.CreatedAt, 10),
			strconv.FormatInt(f.Properties.UpdatedAt, 10),
			string(props), string(geom),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write feature %s: %w", f.ID(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes both collections as an indented JSON document.
// Empty collections encode as [] rather than null.
func WriteJSON(w io.Writer, points []models.MapPoint, features []models.Feature) error {
	doc := Document{Points: points, Features: features}
	if doc.Points == nil {
		doc.Points = []models.MapPoint{}
	}
	if doc.Features == nil {
		doc.Features = []models.Feature{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteZIP writes a ZIP archive bundling the CSV and JSON exports,
// both named with the same timestamp.
func WriteZIP(w io.Writer, points []models.MapPoint, features []models.Feature, now time.Time) error {
	zw := zip.NewWriter(w)

	csvEntry, err := zw.Create(Filename("csv", now))
	if err != nil {
		return fmt.Errorf("create csv entry: %w", err)
	}
	if err := WriteCSV(csvEntry, points, features); err != nil {
		return err
	}

	jsonEntry, err := zw.Create(Filename("json", now))
	if err != nil {
		return fmt.Errorf("create json entry: %w", err)
	}
	if err := WriteJSON(jsonEntry, points, features); err != nil {
		return err
	}

	return zw.Close()
}

// ABOUTME: Import parsers for CSV and JSON annotation exports
// ABOUTME: Tolerant row handling, malformed entries are dropped with a count

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/baptistelechat/geomark/internal/ident"
	"github.com/baptistelechat/geomark/internal/models"
)

// Result is the outcome of a parse: the accepted entries plus the
// number of rows dropped as malformed.
type Result struct {
	Points   []models.MapPoint
	Features []models.Feature
	Skipped  int
}

// ParseJSON parses a JSON export document. A document carrying neither
// a points nor a features key is rejected as ErrInvalidFormat; within
// a recognized document, malformed entries are dropped, not fatal.
func ParseJSON(r io.Reader) (Result, error) {
	var raw struct {
		Points   *json.RawMessage `json:"points"`
		Features *json.RawMessage `json:"features"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if raw.Points == nil && raw.Features == nil {
		return Result{}, fmt.Errorf("%w: no points or features key", ErrInvalidFormat)
	}

	var res Result

	if raw.Points != nil {
		var points []models.MapPoint
		if err := json.Unmarshal(*raw.Points, &points); err != nil {
			return Result{}, fmt.Errorf("%w: points: %v", ErrInvalidFormat, err)
		}
		for _, p := range points {
			if err := sanitizePoint(&p); err != nil {
				res.Skipped++
				continue
			}
			res.Points = append(res.Points, p)
		}
	}

	if raw.Features != nil {
		var features []models.Feature
		if err := json.Unmarshal(*raw.Features, &features); err != nil {
			return Result{}, fmt.Errorf("%w: features: %v", ErrInvalidFormat, err)
		}
		for _, f := range features {
			if err := sanitizeFeature(&f); err != nil {
				res.Skipped++
				continue
			}
			res.Features = append(res.Features, f)
		}
	}

	return res, nil
}

// ParseCSV parses a CSV export. The header row selects columns by
// name, so column order and extra columns are tolerated. Rows that
// cannot be made into a valid entry are dropped and counted.
func ParseCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Result{}, fmt.Errorf("%w: missing header: %v", ErrInvalidFormat, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["type"]; !ok {
		return Result{}, fmt.Errorf("%w: no type column", ErrInvalidFormat)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var res Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}

		// The browser export writes "Point"/"Feature"; lowercase is
		// tolerated on input.
		switch strings.ToLower(strings.TrimSpace(field(row, "type"))) {
		case "point":
			p, err := pointFromRow(row, field)
			if err != nil {
				res.Skipped++
				continue
			}
			res.Points = append(res.Points, p)
		case "feature":
			f, err := featureFromRow(row, field)
			if err != nil {
				res.Skipped++
				continue
			}
			res.Features = append(res.Features, f)
		default:
			res.Skipped++
		}
	}

	return res, nil
}

type fieldFunc func(row []string, name string) string

func pointFromRow(row []string, field fieldFunc) (models.MapPoint, error) {
	lat, err := strconv.ParseFloat(field(row, "lat"), 64)
	if err != nil {
		return models.MapPoint{}, fmt.Errorf("bad lat: %w", err)
	}
	lng, err := strconv.ParseFloat(field(row, "lng"), 64)
	if err != nil {
		return models.MapPoint{}, fmt.Errorf("bad lng: %w", err)
	}

	p := models.MapPoint{
		ID:        field(row, "id"),
		Lat:       lat,
		Lng:       lng,
		Title:     field(row, "title"),
		Notes:     field(row, "notes"),
		URL:       field(row, "url"),
		CreatedAt: parseMillis(field(row, "createdAt")),
		UpdatedAt: parseMillis(field(row, "updatedAt")),
	}
	if err := sanitizePoint(&p); err != nil {
		return models.MapPoint{}, err
	}
	return p, nil
}

func featureFromRow(row []string, field fieldFunc) (models.Feature, error) {
	f := models.Feature{Type: "Feature"}

	props := field(row, "properties")
	if props != "" {
		if err := json.Unmarshal([]byte(props), &f.Properties); err != nil {
			return models.Feature{}, fmt.Errorf("bad properties: %w", err)
		}
	}
	geom := field(row, "geometry")
	if geom == "" {
		return models.Feature{}, fmt.Errorf("missing geometry")
	}
	if err := json.Unmarshal([]byte(geom), &f.Geometry); err != nil {
		return models.Feature{}, fmt.Errorf("bad geometry: %w", err)
	}

	if f.Properties.ID == "" {
		f.Properties.ID = field(row, "id")
	}
	if f.Properties.Name == "" {
		f.Properties.Name = field(row, "title")
	}
	if f.Properties.CreatedAt == 0 {
		f.Properties.CreatedAt = parseMillis(field(row, "createdAt"))
	}
	if f.Properties.UpdatedAt == 0 {
		f.Properties.UpdatedAt = parseMillis(field(row, "updatedAt"))
	}

	if err := sanitizeFeature(&f); err != nil {
		return models.Feature{}, err
	}
	return f, nil
}

func parseMillis(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return models.NowMillis()
	}
	return v
}

// sanitizePoint fills defaults on an imported point. Imports stay
// tolerant so data exported by older builds keeps round-tripping:
// out-of-range numeric coordinates are accepted, a missing title gets
// a default, and only non-finite coordinates drop the row.
func sanitizePoint(p *models.MapPoint) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("coordinates are not finite")
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Point importé"
	}
	if p.ID == "" {
		p.ID = ident.New()
	}
	now := models.NowMillis()
	if p.CreatedAt == 0 {
		p.CreatedAt = now
	}
	if p.UpdatedAt == 0 {
		p.UpdatedAt = p.CreatedAt
	}
	return nil
}

// sanitizeFeature fills defaults on an imported feature and rejects
// entries that cannot be repaired.
func sanitizeFeature(f *models.Feature) error {
	if f.Type == "" {
		f.Type = "Feature"
	}
	if f.Geometry == nil {
		return fmt.Errorf("feature has no geometry")
	}
	if f.Properties.ID == "" {
		f.Properties.ID = ident.New()
	}
	if !f.Properties.Shape.Valid() {
		return fmt.Errorf("unknown shape %q", f.Properties.Shape)
	}
	now := models.NowMillis()
	if f.Properties.CreatedAt == 0 {
		f.Properties.CreatedAt = now
	}
	if f.Properties.UpdatedAt == 0 {
		f.Properties.UpdatedAt = f.Properties.CreatedAt
	}
	return f.Validate()
}

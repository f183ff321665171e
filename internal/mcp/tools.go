// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides annotation CRUD and address search for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baptistelechat/geomark/internal/geo"
	"github.com/baptistelechat/geomark/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerAddPointTool()
	s.registerListPointsTool()
	s.registerRemovePointTool()
	s.registerListFeaturesTool()
	s.registerRemoveFeatureTool()
	if s.geocoder != nil {
		s.registerSearchAddressTool()
	}
}

// AddPointInput defines input for add_point tool.
type AddPointInput struct {
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes,omitempty"`
	URL       string  `json:"url,omitempty"`
	Icon      string  `json:"icon,omitempty"`
}

// PointOutput defines output for point tools.
type PointOutput struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes,omitempty"`
	URL       string  `json:"url,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	UpdatedAt int64   `json:"updated_at"`
}

func pointOutput(p models.MapPoint) PointOutput {
	return PointOutput{
		ID:        p.ID,
		Title:     p.Title,
		Latitude:  p.Lat,
		Longitude: p.Lng,
		Notes:     p.Notes,
		URL:       p.URL,
		Icon:      p.Icon,
		UpdatedAt: p.UpdatedAt,
	}
}

func textResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

func (s *Server) registerAddPointTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_point",
		Description: "Add a labeled point to the map. Use this to mark a place of interest.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the point (e.g., 'Tour Eiffel')",
				},
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude coordinate (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude coordinate (-180 to 180)",
				},
				"notes": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text notes",
				},
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Optional link attached to the point",
				},
				"icon": map[string]interface{}{
					"type":        "string",
					"description": "Optional marker icon (pin, home, building, flag, star, heart, camera, utensils, coffee, cart)",
				},
			},
			"required": []string{"title", "latitude", "longitude"},
		},
	}, s.handleAddPoint)
}

func (s *Server) handleAddPoint(_ context.Context, req *mcp.CallToolRequest, input AddPointInput) (*mcp.CallToolResult, PointOutput, error) {
	if err := models.ValidateIcon(input.Icon); err != nil {
		return nil, PointOutput{}, err
	}

	p, err := models.NewMapPoint(input.Title, input.Latitude, input.Longitude)
	if err != nil {
		return nil, PointOutput{}, err
	}
	p.Notes = input.Notes
	p.URL = input.URL
	p.Icon = input.Icon

	s.store.AddPoint(p)

	output := pointOutput(p)
	return textResult(output), output, nil
}

// ListPointsInput is empty but required for type.
type ListPointsInput struct{}

// ListPointsOutput defines output for list_points tool.
type ListPointsOutput struct {
	Points []PointOutput `json:"points"`
	Count  int           `json:"count"`
}

func (s *Server) registerListPointsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_points",
		Description: "List every labeled point on the map.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListPoints)
}

func (s *Server) handleListPoints(_ context.Context, req *mcp.CallToolRequest, input ListPointsInput) (*mcp.CallToolResult, ListPointsOutput, error) {
	points := s.store.Points()
	outputs := make([]PointOutput, len(points))
	for i, p := range points {
		outputs[i] = pointOutput(p)
	}

	output := ListPointsOutput{Points: outputs, Count: len(outputs)}
	return textResult(output), output, nil
}

// RemovePointInput defines input for remove_point tool.
type RemovePointInput struct {
	ID string `json:"id"`
}

// RemoveOutput defines output for removal tools.
type RemoveOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerRemovePointTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_point",
		Description: "Remove a labeled point from the map. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the point to remove",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleRemovePoint)
}

func (s *Server) handleRemovePoint(_ context.Context, req *mcp.CallToolRequest, input RemovePointInput) (*mcp.CallToolResult, RemoveOutput, error) {
	p, err := s.store.FindPoint(input.ID)
	if err != nil {
		return nil, RemoveOutput{}, fmt.Errorf("point '%s' not found", input.ID)
	}
	s.store.RemovePoint(p.ID)

	output := RemoveOutput{
		Success: true,
		Message: fmt.Sprintf("Removed point '%s'", p.Title),
	}
	return textResult(output), output, nil
}

// FeatureOutput defines output for feature tools.
type FeatureOutput struct {
	ID           string   `json:"id"`
	Shape        string   `json:"shape"`
	Name         string   `json:"name,omitempty"`
	Color        string   `json:"color,omitempty"`
	Radius       *float64 `json:"radius,omitempty"`
	Text         string   `json:"text,omitempty"`
	Measurements []string `json:"measurements,omitempty"`
	UpdatedAt    int64    `json:"updated_at"`
}

// ListFeaturesInput is empty but required for type.
type ListFeaturesInput struct{}

// ListFeaturesOutput defines output for list_features tool.
type ListFeaturesOutput struct {
	Features []FeatureOutput `json:"features"`
	Count    int             `json:"count"`
}

func (s *Server) registerListFeaturesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_features",
		Description: "List every drawn shape on the map with its measurements.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListFeatures)
}

func (s *Server) handleListFeatures(_ context.Context, req *mcp.CallToolRequest, input ListFeaturesInput) (*mcp.CallToolResult, ListFeaturesOutput, error) {
	features := s.store.Features()
	outputs := make([]FeatureOutput, len(features))
	for i, f := range features {
		out := FeatureOutput{
			ID:        f.ID(),
			Shape:     string(f.Properties.Shape),
			Name:      f.Properties.Name,
			Color:     f.Properties.Color,
			Radius:    f.Properties.Radius,
			Text:      f.Properties.Text,
			UpdatedAt: f.Properties.UpdatedAt,
		}
		for _, m := range geo.Measure(f) {
			out.Measurements = append(out.Measurements, m.String())
		}
		outputs[i] = out
	}

	output := ListFeaturesOutput{Features: outputs, Count: len(outputs)}
	return textResult(output), output, nil
}

// RemoveFeatureInput defines input for remove_feature tool.
type RemoveFeatureInput struct {
	ID string `json:"id"`
}

func (s *Server) registerRemoveFeatureTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_feature",
		Description: "Remove a drawn shape from the map. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the feature to remove",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleRemoveFeature)
}

func (s *Server) handleRemoveFeature(_ context.Context, req *mcp.CallToolRequest, input RemoveFeatureInput) (*mcp.CallToolResult, RemoveOutput, error) {
	f, err := s.store.FindFeature(input.ID)
	if err != nil {
		return nil, RemoveOutput{}, fmt.Errorf("feature '%s' not found", input.ID)
	}
	s.store.RemoveFeature(f.ID())

	name := f.Properties.Name
	if name == "" {
		name = f.Properties.Shape.DisplayName()
	}
	output := RemoveOutput{
		Success: true,
		Message: fmt.Sprintf("Removed feature '%s'", name),
	}
	return textResult(output), output, nil
}

// SearchAddressInput defines input for search_address tool.
type SearchAddressInput struct {
	Query string `json:"query"`
}

// SearchAddressOutput defines output for search_address tool.
type SearchAddressOutput struct {
	Results []AddressOutput `json:"results"`
	Count   int             `json:"count"`
}

// AddressOutput is one geocoding suggestion.
type AddressOutput struct {
	FullText  string  `json:"fulltext"`
	City      string  `json:"city,omitempty"`
	ZipCode   string  `json:"zipcode,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *Server) registerSearchAddressTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_address",
		Description: "Search for an address and get coordinates for it. Useful before add_point.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text address or place name",
				},
			},
			"required": []string{"query"},
		},
	}, s.handleSearchAddress)
}

func (s *Server) handleSearchAddress(ctx context.Context, req *mcp.CallToolRequest, input SearchAddressInput) (*mcp.CallToolResult, SearchAddressOutput, error) {
	results, err := s.geocoder.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchAddressOutput{}, fmt.Errorf("address search failed: %w", err)
	}

	outputs := make([]AddressOutput, len(results))
	for i, a := range results {
		outputs[i] = AddressOutput{
			FullText:  a.FullText,
			City:      a.City,
			ZipCode:   a.ZipCode,
			Latitude:  a.Lat,
			Longitude: a.Lng,
		}
	}

	output := SearchAddressOutput{Results: outputs, Count: len(outputs)}
	return textResult(output), output, nil
}

// ABOUTME: MCP resource definitions
// ABOUTME: Provides read-only views for AI agents

package mcp

import (
	"context"
	"encoding/json"

	"github.com/baptistelechat/geomark/internal/geo"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "geomark://annotations",
		Description: "All map annotations: labeled points and drawn shapes",
		URI:         "geomark://annotations",
		MIMEType:    "application/json",
	}, s.handleAnnotationsResource)
}

func (s *Server) handleAnnotationsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	points := s.store.Points()
	pointOutputs := make([]PointOutput, len(points))
	for i, p := range points {
		pointOutputs[i] = pointOutput(p)
	}

	features := s.store.Features()
	featureOutputs := make([]FeatureOutput, len(features))
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
		featureOutputs[i] = out
	}

	output := struct {
		Points   []PointOutput   `json:"points"`
		Features []FeatureOutput `json:"features"`
	}{pointOutputs, featureOutputs}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "geomark://annotations",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}

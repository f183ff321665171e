// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/baptistelechat/geomark/internal/geocode"
	"github.com/baptistelechat/geomark/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes the annotation store over MCP.
type Server struct {
	mcp      *mcp.Server
	store    *store.Store
	geocoder *geocode.Client
}

// NewServer creates MCP server with all capabilities.
func NewServer(st *store.Store, geocoder *geocode.Client) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "geomark",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		store:    st,
		geocoder: geocoder,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

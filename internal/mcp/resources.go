// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only view of conversion history for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// historyURI is the resource URI for recorded conversions.
const historyURI = "eci2ecef://history"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        historyURI,
		Description: "All recorded ECI to ECEF conversions, newest first",
		URI:         historyURI,
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output, err := s.listConversions(0)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		// Recorded conversions may hold NaN.
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      historyURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}

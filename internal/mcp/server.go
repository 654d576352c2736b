// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with conversion tools and history resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps MCP server with the history repository.
type Server struct {
	mcp    *mcp.Server
	repo   storage.Repository
	model  frames.Model
	logger *zap.Logger
}

// NewServer creates MCP server with all capabilities. model is used when a
// tool call does not name one.
func NewServer(repo storage.Repository, model frames.Model, logger *zap.Logger) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if _, err := frames.ParseModel(string(model)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "eci2ecef",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		repo:   repo,
		model:  model,
		logger: logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("model", string(s.model)))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

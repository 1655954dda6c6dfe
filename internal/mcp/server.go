package mcp

import (
	"context"
	"io"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/wsp/internal/workspace"
)

const (
	// ServerName is the MCP server name
	ServerName = "wsp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the workspace manager
type Server struct {
	mcp     *server.MCPServer
	manager *workspace.Manager
	logger  *zap.Logger
}

// NewServer creates a new MCP server instance
func NewServer(manager *workspace.Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		manager: manager,
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Serve answers MCP requests read from in until ctx is cancelled or in is
// closed. Responses are written to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(&zapWriter{logger: s.logger}, "", 0))

	s.logger.Debug("mcp server listening on stdio")
	return stdio.Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(listWorkspacesTool(), s.handleListWorkspaces)
	s.mcp.AddTool(getWorkspaceTool(), s.handleGetWorkspace)
	s.mcp.AddTool(addWorkspaceTool(), s.handleAddWorkspace)
	s.mcp.AddTool(addDirectoryTool(), s.handleAddDirectory)
	s.mcp.AddTool(removeDirectoryTool(), s.handleRemoveDirectory)
	s.mcp.AddTool(deleteWorkspaceTool(), s.handleDeleteWorkspace)
	s.mcp.AddTool(openWorkspaceTool(), s.handleOpenWorkspace)
	s.mcp.AddTool(getEditorTool(), s.handleGetEditor)
	s.mcp.AddTool(setEditorTool(), s.handleSetEditor)
}

// zapWriter forwards the stdio server's log lines to zap
type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Write(p []byte) (int, error) {
	w.logger.Warn("mcp transport", zap.ByteString("message", p))
	return len(p), nil
}

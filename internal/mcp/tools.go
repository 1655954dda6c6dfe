package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/dshills/wsp/internal/launcher"
	"github.com/dshills/wsp/internal/workspace"
	"github.com/dshills/wsp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound      = -32001 // Workspace or directory does not exist
	ErrorCodeAlreadyExists = -32002 // Directory is already a workspace member
)

// handleListWorkspaces handles the list_workspaces tool invocation
func (s *Server) handleListWorkspaces(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.manager.ListWorkspaces(ctx)
	if err != nil {
		return nil, s.toMCPError("list workspaces failed", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"workspaces": list,
		"count":      len(list),
	})), nil
}

// handleGetWorkspace handles the get_workspace tool invocation
func (s *Server) handleGetWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}

	ws, err := s.manager.GetWorkspace(ctx, name)
	if err != nil {
		return nil, s.toMCPError("get workspace failed", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"workspace": ws,
	})), nil
}

// handleAddWorkspace handles the add_workspace tool invocation
func (s *Server) handleAddWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	path, err := requireAbsPath(args)
	if err != nil {
		return nil, err
	}

	res, err := s.manager.AddWorkspace(ctx, workspace.AddRequest{
		Name: getStringDefault(args, "name", ""),
		Path: path,
		Init: getStringDefault(args, "init", ""),
	})
	if err != nil {
		return nil, s.toMCPError("add workspace failed", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"workspace": res.Workspace,
		"directory": res.Dir,
		"created":   res.Created,
	})), nil
}

// handleAddDirectory handles the add_directory tool invocation
func (s *Server) handleAddDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	path, err := requireAbsPath(args)
	if err != nil {
		return nil, err
	}

	res, err := s.manager.AddDir(ctx, workspace.AddRequest{
		Name: name,
		Path: path,
		Init: getStringDefault(args, "init", ""),
	})
	if err != nil {
		return nil, s.toMCPError("add directory failed", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"workspace": res.Workspace,
		"directory": res.Dir,
	})), nil
}

// handleRemoveDirectory handles the remove_directory tool invocation
func (s *Server) handleRemoveDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	path, err := requireString(args, "path")
	if err != nil {
		return nil, err
	}

	removed, err := s.manager.RemoveDirByPath(ctx, name, path)
	if err != nil {
		return nil, s.toMCPError("remove directory failed", err)
	}

	response := map[string]interface{}{
		"removed": removed != nil,
	}
	if removed != nil {
		response["directory"] = removed
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDeleteWorkspace handles the delete_workspace tool invocation
func (s *Server) handleDeleteWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}

	if err := s.manager.DeleteWorkspace(ctx, name); err != nil {
		return nil, s.toMCPError("delete workspace failed", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"deleted": name,
	})), nil
}

// handleOpenWorkspace handles the open_workspace tool invocation
func (s *Server) handleOpenWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}

	report, err := s.manager.OpenWorkspace(ctx, name)
	if err != nil {
		return nil, s.toMCPError("open workspace failed", err)
	}

	return mcp.NewToolResultText(formatJSON(reportJSON(name, report))), nil
}

// handleGetEditor handles the get_editor tool invocation
func (s *Server) handleGetEditor(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	editor, err := s.manager.Editor(ctx)
	if err != nil {
		return nil, s.toMCPError("get editor failed", err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"editor": editor,
	})), nil
}

// handleSetEditor handles the set_editor tool invocation
func (s *Server) handleSetEditor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}
	command, err := requireString(args, "command")
	if err != nil {
		return nil, err
	}

	if err := s.manager.SetEditor(ctx, command); err != nil {
		return nil, s.toMCPError("set editor failed", err)
	}

	editor, err := s.manager.Editor(ctx)
	if err != nil {
		return nil, s.toMCPError("get editor failed", err)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"editor": editor,
	})), nil
}

// Helper functions

// reportJSON flattens a launch report; errors do not marshal on their own
func reportJSON(name string, report *launcher.Report) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(report.Results))
	for _, r := range report.Results {
		entry := map[string]interface{}{
			"path": r.Dir.Path,
		}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		} else {
			entry["pid"] = r.PID
		}
		results = append(results, entry)
	}

	return map[string]interface{}{
		"workspace": name,
		"editor":    report.Editor,
		"launched":  report.Launched(),
		"failed":    len(report.Failed()),
		"results":   results,
	}
}

// toMCPError maps the domain error taxonomy onto MCP error codes
func (s *Server) toMCPError(message string, err error) error {
	code := ErrorCodeInternalError
	switch {
	case errors.Is(err, types.ErrNotFound):
		code = ErrorCodeNotFound
	case errors.Is(err, types.ErrAlreadyExists):
		code = ErrorCodeAlreadyExists
	case errors.Is(err, types.ErrInvalidArgument):
		code = ErrorCodeInvalidParams
	default:
		s.logger.Error(message, zap.Error(err))
	}

	return newMCPError(code, message, map[string]interface{}{
		"error": err.Error(),
	})
}

// arguments extracts the argument map from a tool request
func arguments(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	return args, nil
}

// requireString extracts a non-empty string parameter
func requireString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
			"param":  key,
			"reason": "missing or empty",
		})
	}
	return val, nil
}

// requireAbsPath extracts the path parameter. The server's working
// directory means nothing to the client, so relative paths are refused.
func requireAbsPath(args map[string]interface{}) (string, error) {
	path, err := requireString(args, "path")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": ErrPathNotAbsolute.Error(),
		})
	}
	return path, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// ErrPathNotAbsolute is reported for relative directory paths
var ErrPathNotAbsolute = errors.New("path must be absolute")

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func nameProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// listWorkspacesTool returns the tool definition for list_workspaces
func listWorkspacesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_workspaces",
		Description: "List every workspace with its directories",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getWorkspaceTool returns the tool definition for get_workspace
func getWorkspaceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_workspace",
		Description: "Show one workspace and its directories",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": nameProperty("Workspace name"),
			},
			Required: []string{"name"},
		},
	}
}

// addWorkspaceTool returns the tool definition for add_workspace
func addWorkspaceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_workspace",
		Description: "Create a workspace from a directory, or add the directory to the workspace if it already exists",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to an existing directory",
				},
				"name": nameProperty("Workspace name (defaults to the last path segment)"),
				"init": map[string]interface{}{
					"type":        "string",
					"description": "Shell command run in the directory before the editor starts",
				},
			},
			Required: []string{"path"},
		},
	}
}

// addDirectoryTool returns the tool definition for add_directory
func addDirectoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_directory",
		Description: "Add a directory to an existing workspace",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": nameProperty("Workspace name"),
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to an existing directory",
				},
				"init": map[string]interface{}{
					"type":        "string",
					"description": "Shell command run in the directory before the editor starts",
				},
			},
			Required: []string{"name", "path"},
		},
	}
}

// removeDirectoryTool returns the tool definition for remove_directory
func removeDirectoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "remove_directory",
		Description: "Remove a directory from a workspace. Removing a path that is not a member does nothing.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": nameProperty("Workspace name"),
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Directory path as stored in the workspace",
				},
			},
			Required: []string{"name", "path"},
		},
	}
}

// deleteWorkspaceTool returns the tool definition for delete_workspace
func deleteWorkspaceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_workspace",
		Description: "Delete a workspace and all of its directories",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": nameProperty("Workspace name"),
			},
			Required: []string{"name"},
		},
	}
}

// openWorkspaceTool returns the tool definition for open_workspace
func openWorkspaceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "open_workspace",
		Description: "Open every directory of a workspace in the configured editor",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": nameProperty("Workspace name"),
			},
			Required: []string{"name"},
		},
	}
}

// getEditorTool returns the tool definition for get_editor
func getEditorTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_editor",
		Description: "Show the editor command used to open workspaces",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// setEditorTool returns the tool definition for set_editor
func setEditorTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_editor",
		Description: "Change the editor command used to open workspaces",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Editor executable, e.g. code, nvim or zed",
				},
			},
			Required: []string{"command"},
		},
	}
}

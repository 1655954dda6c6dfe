// Package mcp exposes workspace operations as Model Context Protocol tools.
//
// The server speaks JSON-RPC 2.0 over stdio and is started with:
//
//	wsp serve
//
// # Tools
//
//   - list_workspaces: every workspace with its directories
//   - get_workspace: one workspace by name
//   - add_workspace: create a workspace from an absolute path, or extend it
//   - add_directory: add a directory to an existing workspace
//   - remove_directory: drop a directory by path; unknown paths are a no-op
//   - delete_workspace: delete a workspace and its directories
//   - open_workspace: launch the editor for every directory
//   - get_editor / set_editor: read or change the editor command
//
// Results are returned as indented JSON text. For example open_workspace:
//
//	{
//	  "workspace": "api",
//	  "editor": "code",
//	  "launched": 2,
//	  "failed": 0,
//	  "results": [
//	    {"path": "/src/api", "pid": 4121},
//	    {"path": "/src/api-client", "pid": 4122}
//	  ]
//	}
//
// # Errors
//
// Failures are returned as *MCPError with these codes:
//
//	-32602  invalid or missing parameters
//	-32603  internal error (storage failures)
//	-32001  workspace not found
//	-32002  directory already in the workspace
package mcp

// Package workspace implements the workspace operations behind every wsp
// front end: add, list, show, open and delete workspaces, add and remove
// directories, and read or change the preferred editor.
//
// A Manager coordinates the storage layer, path canonicalization and the
// editor launcher:
//
//	mgr := workspace.New(store, launcher.New(cfg, logger), logger)
//
//	res, err := mgr.AddWorkspace(ctx, workspace.AddRequest{Path: "."})
//	if errors.Is(err, types.ErrAlreadyExists) {
//	    // the directory is already part of the workspace
//	}
//
//	report, err := mgr.OpenWorkspace(ctx, res.Workspace.Name)
//
// Paths are stored in canonical form (absolute, symlinks resolved), so
// "./api", "/home/u/src/api" and a symlink to it name the same directory.
//
// Creating a workspace together with its first directory runs in a single
// transaction; either both rows are written or neither is.
package workspace

// Package types provides the shared domain model for wsp.
//
// A Workspace is a named group of directories that are opened together in a
// code editor. Each Dir holds a canonical (absolute, symlink-resolved) path
// and an optional init script that runs before the editor starts.
//
// # Core Types
//
//	ws := types.NewWorkspace("api")
//	ws.AddDir(types.Dir{Path: "/home/u/src/api"})
//	ws.AddDir(types.Dir{Path: "/home/u/src/api-client"})
//
//	if _, ok := ws.ContainsDir("/home/u/src/api"); ok {
//	    // reject the duplicate before touching storage
//	}
//
// # Identity
//
// A workspace id is assigned by storage on insert. SetID accepts the first
// assignment only; later calls return false so the caller can report the
// attempted overwrite:
//
//	if !ws.SetID(id) {
//	    logger.Warn("workspace id already set", zap.Int64("id", ws.ID))
//	}
//
// # Errors
//
// Every layer reports failures with the sentinels in errors.go, wrapped
// with context. Test with errors.Is:
//
//	if errors.Is(err, types.ErrNotFound) {
//	    ...
//	}
package types

// Package storage provides SQLite-based persistence for workspaces.
//
// The storage layer manages:
//   - Workspaces (unique names)
//   - Directories owned by a workspace
//   - The preferred editor setting
//
// # Database Schema
//
// Tables:
//   - workspaces: id, name (UNIQUE)
//   - dirs: id, workspaceId (ON DELETE CASCADE), path, script
//   - settings: key/value pairs, currently only "editor"
//   - schema_version: version written by the binary that created the file
//
// # Drivers
//
// The default build uses modernc.org/sqlite (pure Go). Building with the
// cgo_sqlite tag switches to github.com/mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./...
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage(filepath.Join(home, "workspaces.db"))
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	ws, err := db.GetWorkspace(ctx, "api")
//	if errors.Is(err, types.ErrNotFound) {
//	    ...
//	}
//
// # Transactions
//
// WithTx scopes a transaction to a callback. It commits when the callback
// returns nil and rolls back otherwise, including on panic:
//
//	err := db.WithTx(ctx, func(tx storage.Store) error {
//	    id, err := tx.InsertWorkspace(ctx, "api")
//	    if err != nil {
//	        return err
//	    }
//	    _, err = tx.InsertDir(ctx, id, types.NewDir("/src/api"))
//	    return err
//	})
//
// # Errors
//
// Driver errors are wrapped with types.ErrStorage, or with
// types.ErrConstraintViolation for unique and foreign key failures.
// Lookups of missing rows return types.ErrNotFound.
package storage

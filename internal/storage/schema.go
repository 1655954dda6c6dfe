package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/dshills/wsp/pkg/types"
)

const (
	// CurrentSchemaVersion is the schema version written by this binary
	CurrentSchemaVersion = "1.0.0"
)

const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// The dirs.workspaceId column name matches databases created by earlier
// releases of the tool, so an existing ~/workspaces.db keeps working.
const workspaceTables = `
CREATE TABLE workspaces (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    name    TEXT UNIQUE NOT NULL
);

CREATE TABLE dirs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    workspaceId     INTEGER NOT NULL,
    path            TEXT NOT NULL,
    script          TEXT,
    FOREIGN KEY (workspaceId) REFERENCES workspaces(id) ON DELETE CASCADE,
    UNIQUE (workspaceId, path)
);

CREATE INDEX IF NOT EXISTS idx_dirs_workspace ON dirs(workspaceId);
`

const settingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    key     TEXT PRIMARY KEY,
    value   TEXT NOT NULL
);
`

// Initialize creates the schema on first run. It is idempotent: the
// workspace tables are only created when the workspaces table is absent.
// A database written by a newer major schema version is refused.
func Initialize(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w: %w", types.ErrStorage, err)
	}

	stored, err := storedSchemaVersion(ctx, db)
	if err != nil {
		return err
	}
	if err := checkSchemaCompatible(stored); err != nil {
		return err
	}

	exists, err := tableExists(ctx, db, "workspaces")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := db.ExecContext(ctx, workspaceTables); err != nil {
			return fmt.Errorf("failed to create workspace tables: %w: %w", types.ErrStorage, err)
		}
	}

	if _, err := db.ExecContext(ctx, settingsTable); err != nil {
		return fmt.Errorf("failed to create settings table: %w: %w", types.ErrStorage, err)
	}

	if stored == nil {
		_, err = db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", CurrentSchemaVersion)
		if err != nil {
			return fmt.Errorf("failed to record schema version %s: %w: %w", CurrentSchemaVersion, types.ErrStorage, err)
		}
	}

	return nil
}

// SchemaVersion returns the schema version recorded in db, or nil when none
// has been recorded yet.
func SchemaVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	return storedSchemaVersion(ctx, db)
}

func storedSchemaVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	var raw string
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_version: %w: %w", types.ErrStorage, err)
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid schema version %q: %w: %w", raw, types.ErrStorage, err)
	}
	return v, nil
}

// checkSchemaCompatible rejects schemas from a newer major version
func checkSchemaCompatible(stored *semver.Version) error {
	if stored == nil {
		return nil
	}
	current := semver.MustParse(CurrentSchemaVersion)
	if stored.Major() > current.Major() {
		return fmt.Errorf("database schema %s is newer than supported %s: %w",
			stored, current, types.ErrStorage)
	}
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var found string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s table: %w: %w", name, types.ErrStorage, err)
	}
	return true, nil
}

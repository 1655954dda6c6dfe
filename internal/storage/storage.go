package storage

import (
	"context"

	"github.com/dshills/wsp/pkg/types"
)

// SettingEditor is the settings key holding the preferred editor command
const SettingEditor = "editor"

// Store defines the persistence operations for workspaces and directories.
// Both the database handle and an open transaction implement it.
type Store interface {
	// Workspace operations
	InsertWorkspace(ctx context.Context, name string) (int64, error)
	DeleteWorkspace(ctx context.Context, name string) (int64, error)
	GetWorkspace(ctx context.Context, name string) (*types.Workspace, error)
	ListWorkspaces(ctx context.Context) ([]*types.Workspace, error)

	// Directory operations
	InsertDir(ctx context.Context, workspaceID int64, dir types.Dir) (int64, error)
	RemoveDir(ctx context.Context, dirID int64) error

	// Settings
	GetEditor(ctx context.Context) (string, error)
	SetEditor(ctx context.Context, command string) error
}

// Storage is a Store backed by an open database
type Storage interface {
	Store

	// WithTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back when fn fails or panics.
	WithTx(ctx context.Context, fn func(Store) error) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx represents a database transaction
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

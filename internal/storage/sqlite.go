package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/wsp/pkg/types"
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Single connection: the pragmas below are per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Cascading deletes depend on this
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage opens the database at dbPath and creates the schema on
// first run.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w: %w", types.ErrStorage, err)
	}

	if err := Initialize(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w: %w", types.ErrStorage, err)
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// WithTx runs fn in a transaction, committing on success and rolling back
// on error or panic.
func (s *SQLiteStorage) WithTx(ctx context.Context, fn func(Store) error) (err error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w: %w", types.ErrStorage, err)
	}
	return nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// classify wraps a driver error into the storage taxonomy. Both drivers
// report constraint failures as "... constraint failed".
func classify(op string, err error) error {
	if strings.Contains(err.Error(), "constraint failed") {
		return fmt.Errorf("%s: %w: %w", op, types.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w: %w", op, types.ErrStorage, err)
}

// Workspace operations

func (s *SQLiteStorage) insertWorkspaceWithQuerier(ctx context.Context, q querier, name string) (int64, error) {
	result, err := q.ExecContext(ctx, "INSERT INTO workspaces (name) VALUES (?)", name)
	if err != nil {
		return 0, classify("failed to insert workspace", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, classify("failed to read workspace id", err)
	}
	return id, nil
}

func (s *SQLiteStorage) InsertWorkspace(ctx context.Context, name string) (int64, error) {
	return s.insertWorkspaceWithQuerier(ctx, s.querier(), name)
}

// deleteWorkspaceWithQuerier deletes by name and reports the matched rows.
// Directories go with it through ON DELETE CASCADE.
func (s *SQLiteStorage) deleteWorkspaceWithQuerier(ctx context.Context, q querier, name string) (int64, error) {
	result, err := q.ExecContext(ctx, "DELETE FROM workspaces WHERE name = ?", name)
	if err != nil {
		return 0, classify("failed to delete workspace", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, classify("failed to read affected rows", err)
	}
	return rows, nil
}

func (s *SQLiteStorage) DeleteWorkspace(ctx context.Context, name string) (int64, error) {
	return s.deleteWorkspaceWithQuerier(ctx, s.querier(), name)
}

// A LEFT JOIN keeps workspaces without directories; their dir columns are NULL.
const workspaceWithDirsQuery = `
	SELECT w.id, w.name, d.id, d.path, d.script
	FROM workspaces w
	LEFT JOIN dirs d ON d.workspaceId = w.id
`

func (s *SQLiteStorage) getWorkspaceWithQuerier(ctx context.Context, q querier, name string) (*types.Workspace, error) {
	rows, err := q.QueryContext(ctx, workspaceWithDirsQuery+" WHERE w.name = ? ORDER BY d.id", name)
	if err != nil {
		return nil, classify("failed to query workspace", err)
	}
	defer func() { _ = rows.Close() }()

	workspaces, err := scanWorkspaces(rows)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("workspace %q: %w", name, types.ErrNotFound)
	}
	return workspaces[0], nil
}

func (s *SQLiteStorage) GetWorkspace(ctx context.Context, name string) (*types.Workspace, error) {
	return s.getWorkspaceWithQuerier(ctx, s.querier(), name)
}

func (s *SQLiteStorage) listWorkspacesWithQuerier(ctx context.Context, q querier) ([]*types.Workspace, error) {
	rows, err := q.QueryContext(ctx, workspaceWithDirsQuery+" ORDER BY w.id, d.id")
	if err != nil {
		return nil, classify("failed to query workspaces", err)
	}
	defer func() { _ = rows.Close() }()

	return scanWorkspaces(rows)
}

func (s *SQLiteStorage) ListWorkspaces(ctx context.Context) ([]*types.Workspace, error) {
	return s.listWorkspacesWithQuerier(ctx, s.querier())
}

// scanWorkspaces folds joined rows, ordered by workspace id, into
// workspaces. Rows with a NULL directory contribute no Dir.
func scanWorkspaces(rows *sql.Rows) ([]*types.Workspace, error) {
	workspaces := make([]*types.Workspace, 0)
	var current *types.Workspace

	for rows.Next() {
		var (
			wsID    int64
			wsName  string
			dirID   sql.NullInt64
			dirPath sql.NullString
			script  sql.NullString
		)
		if err := rows.Scan(&wsID, &wsName, &dirID, &dirPath, &script); err != nil {
			return nil, classify("failed to scan workspace row", err)
		}

		if current == nil || current.ID != wsID {
			current = types.NewWorkspace(wsName)
			current.SetID(wsID)
			workspaces = append(workspaces, current)
		}

		if !dirID.Valid {
			continue
		}
		current.AddDir(types.Dir{
			ID:   dirID.Int64,
			Path: dirPath.String,
			Init: script.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("failed to read workspace rows", err)
	}
	return workspaces, nil
}

// Directory operations

func (s *SQLiteStorage) insertDirWithQuerier(ctx context.Context, q querier, workspaceID int64, dir types.Dir) (int64, error) {
	var script sql.NullString
	if dir.HasInit() {
		script = sql.NullString{String: dir.Init, Valid: true}
	}

	result, err := q.ExecContext(ctx,
		"INSERT INTO dirs (workspaceId, path, script) VALUES (?, ?, ?)",
		workspaceID, dir.Path, script)
	if err != nil {
		return 0, classify("failed to insert directory", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, classify("failed to read directory id", err)
	}
	return id, nil
}

func (s *SQLiteStorage) InsertDir(ctx context.Context, workspaceID int64, dir types.Dir) (int64, error) {
	return s.insertDirWithQuerier(ctx, s.querier(), workspaceID, dir)
}

func (s *SQLiteStorage) removeDirWithQuerier(ctx context.Context, q querier, dirID int64) error {
	result, err := q.ExecContext(ctx, "DELETE FROM dirs WHERE id = ?", dirID)
	if err != nil {
		return classify("failed to remove directory", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return classify("failed to read affected rows", err)
	}
	if rows == 0 {
		return fmt.Errorf("directory %d: %w", dirID, types.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) RemoveDir(ctx context.Context, dirID int64) error {
	return s.removeDirWithQuerier(ctx, s.querier(), dirID)
}

// Settings

func (s *SQLiteStorage) getEditorWithQuerier(ctx context.Context, q querier) (string, error) {
	var editor string
	err := q.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", SettingEditor).Scan(&editor)
	if errors.Is(err, sql.ErrNoRows) {
		return types.DefaultEditor, nil
	}
	if err != nil {
		return "", classify("failed to read editor setting", err)
	}
	return editor, nil
}

func (s *SQLiteStorage) GetEditor(ctx context.Context) (string, error) {
	return s.getEditorWithQuerier(ctx, s.querier())
}

func (s *SQLiteStorage) setEditorWithQuerier(ctx context.Context, q querier, command string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := q.ExecContext(ctx, query, SettingEditor, command); err != nil {
		return classify("failed to write editor setting", err)
	}
	return nil
}

func (s *SQLiteStorage) SetEditor(ctx context.Context, command string) error {
	return s.setEditorWithQuerier(ctx, s.querier(), command)
}

// Transaction operations

func (t *sqliteTx) InsertWorkspace(ctx context.Context, name string) (int64, error) {
	return t.storage.insertWorkspaceWithQuerier(ctx, t.querier(), name)
}

func (t *sqliteTx) DeleteWorkspace(ctx context.Context, name string) (int64, error) {
	return t.storage.deleteWorkspaceWithQuerier(ctx, t.querier(), name)
}

func (t *sqliteTx) GetWorkspace(ctx context.Context, name string) (*types.Workspace, error) {
	return t.storage.getWorkspaceWithQuerier(ctx, t.querier(), name)
}

func (t *sqliteTx) ListWorkspaces(ctx context.Context) ([]*types.Workspace, error) {
	return t.storage.listWorkspacesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) InsertDir(ctx context.Context, workspaceID int64, dir types.Dir) (int64, error) {
	return t.storage.insertDirWithQuerier(ctx, t.querier(), workspaceID, dir)
}

func (t *sqliteTx) RemoveDir(ctx context.Context, dirID int64) error {
	return t.storage.removeDirWithQuerier(ctx, t.querier(), dirID)
}

func (t *sqliteTx) GetEditor(ctx context.Context) (string, error) {
	return t.storage.getEditorWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) SetEditor(ctx context.Context, command string) error {
	return t.storage.setEditorWithQuerier(ctx, t.querier(), command)
}

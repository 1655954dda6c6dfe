package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/wsp/internal/launcher"
	"github.com/dshills/wsp/internal/storage"
	"github.com/dshills/wsp/pkg/types"
)

// Launcher opens directories in an editor
type Launcher interface {
	Launch(ctx context.Context, editor string, dirs []types.Dir) *launcher.Report
}

// Chooser picks the directory to remove from a workspace. ok is false when
// the selection was cancelled.
type Chooser interface {
	Choose(ctx context.Context, ws *types.Workspace) (dir types.Dir, ok bool, err error)
}

// Manager runs workspace operations against a storage backend
type Manager struct {
	store    storage.Storage
	launcher Launcher
	resolve  Resolver
	logger   *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithResolver replaces CanonicalPath, mainly for tests
func WithResolver(r Resolver) Option {
	return func(m *Manager) {
		m.resolve = r
	}
}

// New creates a Manager
func New(store storage.Storage, l Launcher, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:    store,
		launcher: l,
		resolve:  CanonicalPath,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddRequest describes a directory to add. Name and Path are optional for
// AddWorkspace: Path defaults to the working directory and Name to the last
// segment of the canonical path.
type AddRequest struct {
	Name string
	Path string
	Init string
}

// AddResult reports what AddWorkspace or AddDir stored
type AddResult struct {
	Workspace *types.Workspace
	Dir       types.Dir
	Created   bool // A new workspace row was written
}

// AddWorkspace creates a workspace with its first directory, or adds the
// directory to the workspace when one with the resolved name exists.
func (m *Manager) AddWorkspace(ctx context.Context, req AddRequest) (*AddResult, error) {
	canonical, err := m.resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("add workspace: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		if name, err = DefaultName(canonical); err != nil {
			return nil, fmt.Errorf("add workspace: %w", err)
		}
	}
	dir := types.Dir{Path: canonical, Init: req.Init}

	existing, err := m.store.GetWorkspace(ctx, name)
	switch {
	case err == nil:
		m.logger.Debug("workspace exists, adding directory",
			zap.String("workspace", name),
			zap.String("path", canonical))
		return m.addToExisting(ctx, existing, dir)
	case !errors.Is(err, types.ErrNotFound):
		return nil, fmt.Errorf("add workspace %q: %w", name, err)
	}

	ws := types.NewWorkspace(name)
	err = m.store.WithTx(ctx, func(tx storage.Store) error {
		id, err := tx.InsertWorkspace(ctx, name)
		if err != nil {
			return err
		}
		if !ws.SetID(id) {
			m.logger.Warn("workspace id already set", zap.String("workspace", name), zap.Int64("id", ws.ID))
		}

		dir.ID, err = tx.InsertDir(ctx, id, dir)
		return err
	})
	if err != nil {
		if errors.Is(err, types.ErrConstraintViolation) {
			return nil, fmt.Errorf("add workspace %q: %w: %w", name, types.ErrAlreadyExists, err)
		}
		return nil, fmt.Errorf("add workspace %q: %w", name, err)
	}

	ws.AddDir(dir)
	m.logger.Info("workspace created",
		zap.String("workspace", name),
		zap.Int64("id", ws.ID),
		zap.String("path", canonical))
	return &AddResult{Workspace: ws, Dir: dir, Created: true}, nil
}

// AddDir adds a directory to an existing workspace
func (m *Manager) AddDir(ctx context.Context, req AddRequest) (*AddResult, error) {
	ws, err := m.store.GetWorkspace(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("add directory: %w", err)
	}

	canonical, err := m.resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("add directory: %w", err)
	}

	return m.addToExisting(ctx, ws, types.Dir{Path: canonical, Init: req.Init})
}

func (m *Manager) addToExisting(ctx context.Context, ws *types.Workspace, dir types.Dir) (*AddResult, error) {
	if _, ok := ws.ContainsDir(dir.Path); ok {
		return nil, fmt.Errorf("directory %s in workspace %q: %w", dir.Path, ws.Name, types.ErrAlreadyExists)
	}

	id, err := m.store.InsertDir(ctx, ws.ID, dir)
	if err != nil {
		if errors.Is(err, types.ErrConstraintViolation) {
			return nil, fmt.Errorf("directory %s in workspace %q: %w: %w", dir.Path, ws.Name, types.ErrAlreadyExists, err)
		}
		return nil, fmt.Errorf("add directory to %q: %w", ws.Name, err)
	}
	dir.ID = id
	ws.AddDir(dir)

	m.logger.Info("directory added",
		zap.String("workspace", ws.Name),
		zap.String("path", dir.Path))
	return &AddResult{Workspace: ws, Dir: dir}, nil
}

// RemoveDir removes the directory picked by chooser. A workspace without
// directories, or a cancelled selection, is a successful no-op and returns
// a nil Dir.
func (m *Manager) RemoveDir(ctx context.Context, name string, chooser Chooser) (*types.Dir, error) {
	ws, err := m.store.GetWorkspace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("remove directory: %w", err)
	}
	if ws.IsEmpty() {
		m.logger.Info("workspace has no directories", zap.String("workspace", name))
		return nil, nil
	}

	dir, ok, err := chooser.Choose(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("remove directory: %w", err)
	}
	if !ok {
		m.logger.Info("no directory selected", zap.String("workspace", name))
		return nil, nil
	}

	if err := m.store.RemoveDir(ctx, dir.ID); err != nil {
		return nil, fmt.Errorf("remove directory %s from %q: %w", dir.Path, name, err)
	}
	ws.RemoveDir(dir.Path)

	m.logger.Info("directory removed",
		zap.String("workspace", name),
		zap.String("path", dir.Path))
	return &dir, nil
}

// RemoveDirByPath removes the directory stored under path. A path that is
// not a member is a no-op.
func (m *Manager) RemoveDirByPath(ctx context.Context, name, path string) (*types.Dir, error) {
	return m.RemoveDir(ctx, name, PathChooser{Path: m.lookupPath(path)})
}

// lookupPath canonicalizes path when it still exists on disk. Removed
// directories fall back to a cleaned absolute path so they can be dropped.
func (m *Manager) lookupPath(path string) string {
	if canonical, err := m.resolve(path); err == nil {
		return canonical
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// DeleteWorkspace deletes a workspace and, by cascade, its directories
func (m *Manager) DeleteWorkspace(ctx context.Context, name string) error {
	rows, err := m.store.DeleteWorkspace(ctx, name)
	if err != nil {
		return fmt.Errorf("delete workspace %q: %w", name, err)
	}
	if rows == 0 {
		return fmt.Errorf("delete workspace %q: %w", name, types.ErrNotFound)
	}

	m.logger.Info("workspace deleted", zap.String("workspace", name))
	return nil
}

// ListWorkspaces returns every workspace with its directories
func (m *Manager) ListWorkspaces(ctx context.Context) ([]*types.Workspace, error) {
	list, err := m.store.ListWorkspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return list, nil
}

// GetWorkspace returns a single workspace by name
func (m *Manager) GetWorkspace(ctx context.Context, name string) (*types.Workspace, error) {
	ws, err := m.store.GetWorkspace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// OpenWorkspace launches the configured editor for every directory of the
// named workspace
func (m *Manager) OpenWorkspace(ctx context.Context, name string) (*launcher.Report, error) {
	ws, err := m.store.GetWorkspace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}

	editor, err := m.store.GetEditor(ctx)
	if err != nil {
		return nil, fmt.Errorf("open workspace %q: %w", name, err)
	}

	m.logger.Debug("opening workspace",
		zap.String("workspace", name),
		zap.String("editor", editor),
		zap.Int("dirs", len(ws.Dirs)))
	return m.launcher.Launch(ctx, editor, ws.Dirs), nil
}

// Editor returns the preferred editor command
func (m *Manager) Editor(ctx context.Context) (string, error) {
	editor, err := m.store.GetEditor(ctx)
	if err != nil {
		return "", fmt.Errorf("get editor: %w", err)
	}
	return editor, nil
}

// SetEditor overwrites the preferred editor command
func (m *Manager) SetEditor(ctx context.Context, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("editor command must not be empty: %w", types.ErrInvalidArgument)
	}
	if err := m.store.SetEditor(ctx, command); err != nil {
		return fmt.Errorf("set editor: %w", err)
	}

	m.logger.Info("editor updated", zap.String("editor", command))
	return nil
}

// PathChooser selects the directory whose path matches Path
type PathChooser struct {
	Path string
}

// Choose implements Chooser
func (c PathChooser) Choose(_ context.Context, ws *types.Workspace) (types.Dir, bool, error) {
	dir, ok := ws.Dir(c.Path)
	return dir, ok, nil
}

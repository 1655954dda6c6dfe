package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/wsp/pkg/types"
)

// Resolver turns a user supplied path into its canonical form
type Resolver func(path string) (string, error)

// CanonicalPath resolves path to an absolute, symlink-free path. An empty
// path means the current working directory. The path must exist.
func CanonicalPath(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", path, types.ErrInvalidArgument, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", path, types.ErrInvalidArgument, err)
	}
	return resolved, nil
}

// DefaultName derives a workspace name from the last segment of a
// canonical path
func DefaultName(canonical string) (string, error) {
	name := filepath.Base(canonical)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive a workspace name from %q: %w", canonical, types.ErrInvalidArgument)
	}
	return name, nil
}

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wsp/pkg/types"
)

func TestCanonicalPath(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	dir := filepath.Join(root, "proj")
	require.NoError(t, os.Mkdir(dir, 0o755))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"absolute", dir, dir},
		{"trailing separator", dir + string(filepath.Separator), dir},
		{"dot segments", filepath.Join(root, "proj", "..", "proj"), dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalPath_Symlink(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := filepath.Join(root, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := CanonicalPath(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestCanonicalPath_Missing(t *testing.T) {
	_, err := CanonicalPath(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestDefaultName(t *testing.T) {
	name, err := DefaultName(filepath.Join(string(filepath.Separator), "home", "u", "projects", "foo"))
	require.NoError(t, err)
	assert.Equal(t, "foo", name)

	_, err = DefaultName(string(filepath.Separator))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

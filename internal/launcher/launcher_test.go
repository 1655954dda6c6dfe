package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/wsp/pkg/types"
)

// fakeSpawner records commands and fails for the configured directories
type fakeSpawner struct {
	calls  []Command
	failOn map[string]error
	nextID int
}

func (f *fakeSpawner) Spawn(cmd Command) (int, error) {
	f.calls = append(f.calls, cmd)
	if err, ok := f.failOn[cmd.Dir]; ok {
		return 0, err
	}
	f.nextID++
	return 1000 + f.nextID, nil
}

func testDirs() []types.Dir {
	return []types.Dir{
		{ID: 1, Path: "/src/api"},
		{ID: 2, Path: "/src/web", Init: "nvm use"},
		{ID: 3, Path: "/src/docs"},
	}
}

func TestLaunch_AllDirectories(t *testing.T) {
	spawner := &fakeSpawner{}
	l := New(Config{Shell: "bash", ShellFlag: "-c", Spawner: spawner}, zaptest.NewLogger(t))

	report := l.Launch(context.Background(), "code", testDirs())

	require.Len(t, spawner.calls, 3)
	require.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Launched())
	assert.Empty(t, report.Failed())
	assert.NoError(t, report.Err())
	assert.Equal(t, "code", report.Editor)

	for i, res := range report.Results {
		assert.Equal(t, testDirs()[i].Path, res.Dir.Path)
		assert.Greater(t, res.PID, 0)
	}
}

func TestLaunch_FailureDoesNotStopRemaining(t *testing.T) {
	boom := errors.New("exec: not found")
	spawner := &fakeSpawner{failOn: map[string]error{"/src/web": boom}}
	l := New(Config{Shell: "bash", ShellFlag: "-c", Spawner: spawner}, zaptest.NewLogger(t))

	report := l.Launch(context.Background(), "code", testDirs())

	require.Len(t, spawner.calls, 3, "every directory is attempted")
	assert.Equal(t, 2, report.Launched())

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "/src/web", failed[0].Dir.Path)
	assert.ErrorIs(t, report.Err(), boom)
	assert.Contains(t, report.Err().Error(), "/src/web")
}

func TestLaunch_CancelledContext(t *testing.T) {
	spawner := &fakeSpawner{}
	l := New(Config{Shell: "bash", ShellFlag: "-c", Spawner: spawner}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := l.Launch(ctx, "code", testDirs())

	assert.Empty(t, spawner.calls)
	assert.Len(t, report.Failed(), 3)
	assert.ErrorIs(t, report.Err(), context.Canceled)
}

func TestLaunch_NoDirectories(t *testing.T) {
	l := New(Config{Shell: "bash", ShellFlag: "-c", Spawner: &fakeSpawner{}}, nil)

	report := l.Launch(context.Background(), "code", nil)

	assert.Empty(t, report.Results)
	assert.NoError(t, report.Err())
}

func TestLaunch_EmptyEditorFallsBackToDefault(t *testing.T) {
	spawner := &fakeSpawner{}
	l := New(Config{Shell: "bash", ShellFlag: "-c", Spawner: spawner}, nil)

	report := l.Launch(context.Background(), "  ", testDirs()[:1])

	assert.Equal(t, types.DefaultEditor, report.Editor)
	require.Len(t, spawner.calls, 1)
	assert.Equal(t, []string{"-c", "code ."}, spawner.calls[0].Args)
}

func TestCommand(t *testing.T) {
	l := New(Config{Shell: "bash", ShellFlag: "-c"}, nil)

	tests := []struct {
		name     string
		editor   string
		dir      types.Dir
		wantArgs []string
	}{
		{
			name:     "plain",
			editor:   "code",
			dir:      types.Dir{Path: "/src/api"},
			wantArgs: []string{"-c", "code ."},
		},
		{
			name:     "editor with flags",
			editor:   "code -n",
			dir:      types.Dir{Path: "/src/api"},
			wantArgs: []string{"-c", "code -n ."},
		},
		{
			name:     "init script runs first",
			editor:   "nvim",
			dir:      types.Dir{Path: "/src/web", Init: "nvm use"},
			wantArgs: []string{"-c", "nvm use && nvim ."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := l.Command(tt.editor, tt.dir)
			assert.Equal(t, "bash", cmd.Name)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, tt.dir.Path, cmd.Dir)
			assert.Equal(t, []string{"WSP_DIR=" + tt.dir.Path}, cmd.Env)
		})
	}
}

func TestCommand_NoShellFlag(t *testing.T) {
	l := New(Config{Shell: "sh"}, nil)

	cmd := l.Command("code", types.Dir{Path: "/src/api"})
	assert.Equal(t, []string{"code ."}, cmd.Args)
}

func TestExecSpawner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	marker := filepath.Join(dir, "opened")

	// The init script runs in the directory and leaves a marker behind
	l := New(Config{Shell: sh, ShellFlag: "-c"}, zaptest.NewLogger(t))
	report := l.Launch(context.Background(), "true", []types.Dir{{Path: dir, Init: `pwd > "$WSP_DIR/opened"`}})
	require.NoError(t, report.Err())
	require.Len(t, report.Results, 1)
	assert.Greater(t, report.Results[0].PID, 0)

	// The child is detached, so poll for its side effect
	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestExecSpawner_MissingShell(t *testing.T) {
	l := New(Config{Shell: "/nonexistent/shell-for-wsp", ShellFlag: "-c"}, nil)

	report := l.Launch(context.Background(), "code", []types.Dir{{Path: t.TempDir()}})
	assert.Equal(t, 0, report.Launched())
	assert.Error(t, report.Err())
}

package cli

// NOTE: TestAddCommand_CurrentDirectory uses os.Chdir() which is process-wide.
// Tests in this package MUST NOT use t.Parallel().

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dshills/wsp/internal/launcher"
	"github.com/dshills/wsp/pkg/types"
)

// recordingSpawner stands in for real editor processes
type recordingSpawner struct {
	commands []launcher.Command
	err      error
}

func (r *recordingSpawner) Spawn(cmd launcher.Command) (int, error) {
	r.commands = append(r.commands, cmd)
	if r.err != nil {
		return 0, r.err
	}
	return 4000 + len(r.commands), nil
}

type cliEnv struct {
	root    string
	dbPath  string
	spawner *recordingSpawner
}

// newCLIEnv isolates HOME and the database inside a temp dir
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	t.Setenv("HOME", filepath.Join(root, "home"))
	t.Setenv("WSP_DB_PATH", "")
	t.Setenv("WSP_LOG_LEVEL", "")

	return &cliEnv{
		root:    root,
		dbPath:  filepath.Join(root, "workspaces.db"),
		spawner: &recordingSpawner{},
	}
}

func (e *cliEnv) mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(append([]string{e.root}, parts...)...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

// run executes one wsp invocation and returns its stdout
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	app := NewApp(strings.NewReader(""), &out, &errOut)
	app.Spawner = e.spawner
	app.Interactive = func() bool { return false }
	defer app.Close()

	cmd := NewRootCmd(app)
	cmd.SetArgs(append([]string{"--db", e.dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "wsp %s", strings.Join(args, " "))
	return out
}

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCmd(NewApp(nil, &bytes.Buffer{}, &bytes.Buffer{}))

	for _, name := range []string{"add", "del", "list", "show", "open", "dir", "editor", "serve", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "db", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s flag", flag)
	}
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestAddCommand(t *testing.T) {
	env := newCLIEnv(t)
	dir := env.mkdir(t, "src", "api")

	out := env.mustRun(t, "add", "-p", dir)
	assert.Equal(t, "Workspace api added\n", out)

	other := env.mkdir(t, "src", "api-client")
	out = env.mustRun(t, "add", "-p", other, "-n", "api")
	assert.Equal(t, "Added "+other+" to workspace api\n", out)

	_, err := env.run(t, "add", "-p", dir)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestAddCommand_CurrentDirectory(t *testing.T) {
	env := newCLIEnv(t)
	dir := env.mkdir(t, "projects", "foo")

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	out := env.mustRun(t, "add")
	assert.Equal(t, "Workspace foo added\n", out)
}

func TestDelCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-p", env.mkdir(t, "api"))

	out := env.mustRun(t, "del", "-n", "api")
	assert.Equal(t, "Workspace api deleted\n", out)

	_, err := env.run(t, "del", "-n", "api")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = env.run(t, "del")
	assert.Error(t, err, "--name is required")
}

func TestListCommand_Empty(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "No workspaces found")

	out = env.mustRun(t, "list", "--format", "json")
	assert.JSONEq(t, "[]", out)
}

func TestListCommand_Table(t *testing.T) {
	env := newCLIEnv(t)
	api := env.mkdir(t, "api")
	web := env.mkdir(t, "web")

	env.mustRun(t, "add", "-p", api)
	env.mustRun(t, "dir", "-w", "api", "add", "-p", web, "--init", "nvm use")

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "WORKSPACE")
	assert.Contains(t, out, api)
	assert.Contains(t, out, web)
	assert.Contains(t, out, "nvm use")
}

func TestListCommand_Formats(t *testing.T) {
	env := newCLIEnv(t)
	api := env.mkdir(t, "api")
	env.mustRun(t, "add", "-p", api)

	var fromJSON []types.Workspace
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "list", "-f", "json")), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "api", fromJSON[0].Name)
	assert.Equal(t, []string{api}, fromJSON[0].Paths())

	var fromYAML []types.Workspace
	require.NoError(t, yaml.Unmarshal([]byte(env.mustRun(t, "list", "-f", "yaml")), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, []string{api}, fromYAML[0].Paths())

	_, err := env.run(t, "list", "-f", "xml")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestShowCommand(t *testing.T) {
	env := newCLIEnv(t)
	api := env.mkdir(t, "api")
	env.mustRun(t, "add", "-p", api)

	out := env.mustRun(t, "show", "-w", "api")
	assert.Contains(t, out, api)

	_, err := env.run(t, "show", "-w", "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestOpenCommand(t *testing.T) {
	env := newCLIEnv(t)
	api := env.mkdir(t, "api")
	web := env.mkdir(t, "web")
	env.mustRun(t, "add", "-p", api)
	env.mustRun(t, "dir", "-w", "api", "add", "-p", web)
	env.mustRun(t, "editor", "nvim")

	out := env.mustRun(t, "open", "-w", "api")
	assert.Contains(t, out, "Opening api with nvim")
	assert.Contains(t, out, "✓ "+api)
	assert.Contains(t, out, "✓ "+web)

	require.Len(t, env.spawner.commands, 2)
	assert.Equal(t, api, env.spawner.commands[0].Dir)
	assert.Equal(t, web, env.spawner.commands[1].Dir)
	assert.Contains(t, env.spawner.commands[0].Env, launcher.EnvDir+"="+api)
}

func TestOpenCommand_LaunchFailure(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-p", env.mkdir(t, "api"))
	env.spawner.err = errors.New("exec: \"bash\": executable file not found")

	out, err := env.run(t, "open", "-w", "api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 directories failed")
	assert.Contains(t, out, "executable file not found")
}

func TestOpenCommand_NotFound(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "open", "-w", "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Empty(t, env.spawner.commands)
}

func TestDirCommands(t *testing.T) {
	env := newCLIEnv(t)
	api := env.mkdir(t, "api")
	web := env.mkdir(t, "web")
	env.mustRun(t, "add", "-p", api)

	out := env.mustRun(t, "dir", "-w", "api", "add", "-p", web)
	assert.Equal(t, "Added "+web+" to workspace api\n", out)

	_, err := env.run(t, "dir", "-w", "api", "add", "-p", web)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	_, err = env.run(t, "dir", "-w", "missing", "add", "-p", web)
	assert.ErrorIs(t, err, types.ErrNotFound)

	out = env.mustRun(t, "dir", "-w", "api", "rm", "-p", web)
	assert.Equal(t, "Removed "+web+" from workspace api\n", out)

	out = env.mustRun(t, "dir", "-w", "api", "rm", "-p", web)
	assert.Equal(t, "Nothing removed\n", out)
}

func TestDirRmCommand_NonInteractiveRequiresPath(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-p", env.mkdir(t, "api"))

	_, err := env.run(t, "dir", "-w", "api", "rm")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestDirCommand_RequiresWorkspace(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "dir", "add", "-p", env.mkdir(t, "api"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace")
}

func TestEditorCommand(t *testing.T) {
	env := newCLIEnv(t)

	assert.Equal(t, "code\n", env.mustRun(t, "editor"))
	assert.Equal(t, "zed\n", env.mustRun(t, "editor", "zed"))
	assert.Equal(t, "zed\n", env.mustRun(t, "editor"))

	_, err := env.run(t, "editor", " ")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestVersionCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "version")
	assert.Contains(t, out, "wsp "+Version)
	assert.Contains(t, out, "sqlite driver: ")

	_, err := os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(err), "version must not create the database")
}

func TestServeCommand_StopsOnEOF(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "serve")
	assert.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	env := newCLIEnv(t)
	cfgDB := filepath.Join(env.root, "from-config.db")
	cfgFile := filepath.Join(env.root, "wsp.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("db_path: "+cfgDB+"\n"), 0o600))

	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out, &bytes.Buffer{})
	defer app.Close()
	cmd := NewRootCmd(app)
	cmd.SetArgs([]string{"--config", cfgFile, "editor"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(cfgDB)
	assert.NoError(t, err, "database should be created at the configured path")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

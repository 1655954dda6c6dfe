package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/wsp/pkg/types"
)

// EnvDir names the environment variable that carries the directory path
// into the spawned shell
const EnvDir = "WSP_DIR"

// Command describes one process to start
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// Spawner starts a process without waiting for it and returns its pid
type Spawner interface {
	Spawn(cmd Command) (int, error)
}

// Config holds launcher settings
type Config struct {
	Shell     string
	ShellFlag string
	Spawner   Spawner // Defaults to ExecSpawner
}

// Launcher spawns one editor process per workspace directory
type Launcher struct {
	shell     string
	shellFlag string
	spawner   Spawner
	logger    *zap.Logger
}

// New creates a launcher
func New(cfg Config, logger *zap.Logger) *Launcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	spawner := cfg.Spawner
	if spawner == nil {
		spawner = ExecSpawner{}
	}
	return &Launcher{
		shell:     cfg.Shell,
		shellFlag: cfg.ShellFlag,
		spawner:   spawner,
		logger:    logger,
	}
}

// Result is the outcome of launching a single directory
type Result struct {
	Dir types.Dir
	PID int
	Err error
}

// Report collects the results of one Launch call, in directory order
type Report struct {
	Editor  string
	Results []Result
}

// Launched returns the number of processes that were started
func (r *Report) Launched() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results whose spawn failed
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins all spawn failures, or returns nil when every spawn succeeded
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Dir.Path, res.Err))
	}
	return errors.Join(errs...)
}

// Launch starts editor once per directory. Spawn failures are recorded and
// do not stop the remaining directories. A cancelled context marks every
// directory not yet attempted as failed.
func (l *Launcher) Launch(ctx context.Context, editor string, dirs []types.Dir) *Report {
	if strings.TrimSpace(editor) == "" {
		editor = types.DefaultEditor
	}
	report := &Report{
		Editor:  editor,
		Results: make([]Result, 0, len(dirs)),
	}

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{Dir: dir, Err: err})
			continue
		}

		cmd := l.Command(editor, dir)
		pid, err := l.spawner.Spawn(cmd)
		if err != nil {
			l.logger.Warn("failed to spawn editor",
				zap.String("path", dir.Path),
				zap.String("editor", editor),
				zap.Error(err))
			report.Results = append(report.Results, Result{Dir: dir, Err: err})
			continue
		}

		l.logger.Debug("editor spawned",
			zap.String("path", dir.Path),
			zap.Int("pid", pid))
		report.Results = append(report.Results, Result{Dir: dir, PID: pid})
	}

	return report
}

// Command builds the shell invocation that opens dir in editor
func (l *Launcher) Command(editor string, dir types.Dir) Command {
	script := editor + " ."
	if dir.HasInit() {
		script = dir.Init + " && " + script
	}

	args := make([]string, 0, 2)
	if l.shellFlag != "" {
		args = append(args, l.shellFlag)
	}
	args = append(args, script)

	return Command{
		Name: l.shell,
		Args: args,
		Dir:  dir.Path,
		Env:  []string{EnvDir + "=" + dir.Path},
	}
}

// Package cli implements the wsp command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/wsp/internal/config"
	"github.com/dshills/wsp/internal/launcher"
	"github.com/dshills/wsp/internal/logging"
	"github.com/dshills/wsp/internal/storage"
	"github.com/dshills/wsp/internal/workspace"
)

// App carries the state shared by every command of one invocation
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Spawner overrides process creation; nil starts real editors
	Spawner launcher.Spawner
	// Interactive reports whether a picker may be shown; nil checks stdin
	Interactive func() bool

	cfgFile string
	dbPath  string
	verbose bool

	viper   *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
	store   *storage.SQLiteStorage
	manager *workspace.Manager
}

// NewApp creates an App bound to the given streams
func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{In: in, Out: out, Err: errOut, viper: viper.New()}
}

// Execute runs the root command against the process streams
func Execute() error {
	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	defer app.Close()

	if err := NewRootCmd(app).Execute(); err != nil {
		PrintError(app.Err, err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree for app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wsp",
		Short: "Group directories into workspaces and open them together",
		Long: `wsp keeps named workspaces, each a list of directories, and opens
every directory of a workspace in your editor with one command.

Quick start:
  wsp add                     Add the current directory as a workspace
  wsp dir -w api add -p ../x  Add another directory to a workspace
  wsp list                    Show all workspaces
  wsp open -w api             Open every directory of a workspace`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig()
		},
	}
	rootCmd.SetIn(app.In)
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is ~/.config/wsp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&app.dbPath, "db", "", "workspace database (default is ~/workspaces.db)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newDelCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newShowCmd(app))
	rootCmd.AddCommand(newOpenCmd(app))
	rootCmd.AddCommand(newDirCmd(app))
	rootCmd.AddCommand(newEditorCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newVersionCmd(app))

	return rootCmd
}

// loadConfig reads configuration and builds the logger. The database is
// opened lazily by Manager so that version and help never touch it.
func (a *App) loadConfig() error {
	cfg, err := config.Load(a.viper, a.cfgFile)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		path, err := config.ExpandHome(a.dbPath)
		if err != nil {
			return err
		}
		cfg.DBPath = path
	}
	a.cfg = cfg

	logger, err := logging.NewWithWriter(logging.Level(cfg.LogLevel, a.verbose), a.Err)
	if err != nil {
		return err
	}
	a.logger = logger

	if used := config.ConfigFileUsed(a.viper); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// Manager opens the database on first use and returns the workspace manager
func (a *App) Manager() (*workspace.Manager, error) {
	if a.manager != nil {
		return a.manager, nil
	}
	if a.cfg == nil {
		if err := a.loadConfig(); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("opening database",
		zap.String("path", a.cfg.DBPath),
		zap.String("driver", storage.DriverName))
	store, err := storage.NewSQLiteStorage(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = store

	l := launcher.New(launcher.Config{
		Shell:     a.cfg.Shell,
		ShellFlag: a.cfg.ShellFlag,
		Spawner:   a.Spawner,
	}, a.logger.Named("launcher"))

	a.manager = workspace.New(store, l, a.logger.Named("workspace"))
	return a.manager, nil
}

// Close releases the database and flushes the logger
func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
		a.store = nil
		a.manager = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// interactive reports whether stdin is a terminal a picker can use
func (a *App) interactive() bool {
	if a.Interactive != nil {
		return a.Interactive()
	}
	f, ok := a.In.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withManager runs fn with the workspace manager
func withManager(app *App, fn func(ctx context.Context, mgr *workspace.Manager) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		mgr, err := app.Manager()
		if err != nil {
			return err
		}
		return fn(cmd.Context(), mgr)
	}
}

// PrintError writes err to w in the CLI's error format
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/wsp/internal/picker"
	"github.com/dshills/wsp/internal/workspace"
	"github.com/dshills/wsp/pkg/types"
)

// newDirCmd creates the dir command group
func newDirCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Dir operations",
		Long: `Add directories to a workspace or remove them.

Example:
  wsp dir -w backend add -p ~/src/worker
  wsp dir -w backend rm`,
	}

	cmd.PersistentFlags().StringVarP(&name, "workspace", "w", "", "workspace name")
	_ = cmd.MarkPersistentFlagRequired("workspace")

	cmd.AddCommand(newDirAddCmd(app, &name))
	cmd.AddCommand(newDirRmCmd(app, &name))
	return cmd
}

// newDirAddCmd creates the dir add command
func newDirAddCmd(app *App, name *string) *cobra.Command {
	var req workspace.AddRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a directory to a workspace",
		Args:  cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			req.Name = *name
			res, err := mgr.AddDir(ctx, req)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(app.Out, "Added %s to workspace %s\n", res.Dir.Path, res.Workspace.Name)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&req.Path, "path", "p", "", "directory to add")
	cmd.Flags().StringVarP(&req.Init, "init", "i", "", "shell command run before the editor starts")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

// newDirRmCmd creates the dir rm command
func newDirRmCmd(app *App, name *string) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove"},
		Short:   "Remove a directory from a workspace",
		Long: `Remove a directory from a workspace. Without --path an interactive
list is shown; Esc cancels without changes.`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			var (
				removed *types.Dir
				err     error
			)
			switch {
			case path != "":
				removed, err = mgr.RemoveDirByPath(ctx, *name, path)
			case app.interactive():
				removed, err = mgr.RemoveDir(ctx, *name, picker.New(app.In, app.Out))
			default:
				return fmt.Errorf("--path is required when stdin is not a terminal: %w", types.ErrInvalidArgument)
			}
			if err != nil {
				return err
			}

			if removed == nil {
				_, _ = fmt.Fprintln(app.Out, "Nothing removed")
				return nil
			}
			_, _ = fmt.Fprintf(app.Out, "Removed %s from workspace %s\n", removed.Path, *name)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "directory to remove (default is to pick interactively)")
	return cmd
}

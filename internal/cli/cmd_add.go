package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/wsp/internal/workspace"
)

// newAddCmd creates the add command
func newAddCmd(app *App) *cobra.Command {
	var req workspace.AddRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add new workspace",
		Long: `Create a workspace from a directory. When a workspace with the same
name exists the directory is added to it instead.

The path defaults to the current directory and the name to the last
segment of the resolved path.

Example:
  wsp add
  wsp add -p ~/src/api -n backend
  wsp add -p ~/src/web -n backend --init "nvm use"`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			res, err := mgr.AddWorkspace(ctx, req)
			if err != nil {
				return err
			}

			if res.Created {
				_, _ = fmt.Fprintf(app.Out, "Workspace %s added\n", res.Workspace.Name)
			} else {
				_, _ = fmt.Fprintf(app.Out, "Added %s to workspace %s\n", res.Dir.Path, res.Workspace.Name)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&req.Path, "path", "p", "", "directory to add (default is the current directory)")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "workspace name (default is the directory name)")
	cmd.Flags().StringVarP(&req.Init, "init", "i", "", "shell command run before the editor starts")
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/wsp/internal/workspace"
)

// newDelCmd creates the del command
func newDelCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "del",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete a workspace",
		Long: `Delete a workspace and all of its directories. The directories
themselves are not touched.

Example:
  wsp del -n backend`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			if err := mgr.DeleteWorkspace(ctx, name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(app.Out, "Workspace %s deleted\n", name)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "workspace name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dshills/wsp/internal/workspace"
	"github.com/dshills/wsp/pkg/types"
)

// newShowCmd creates the show command
func newShowCmd(app *App) *cobra.Command {
	var (
		name   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one workspace",
		Long: `Show the directories of a single workspace.

Example:
  wsp show -w backend
  wsp show -w backend --format json`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			ws, err := mgr.GetWorkspace(ctx, name)
			if err != nil {
				return err
			}
			return writeWorkspaces(app, format, []*types.Workspace{ws})
		}),
	}

	cmd.Flags().StringVarP(&name, "workspace", "w", "", "workspace name")
	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "output format: table, yaml or json")
	_ = cmd.MarkFlagRequired("workspace")
	return cmd
}

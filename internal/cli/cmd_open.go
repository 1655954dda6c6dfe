package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/wsp/internal/workspace"
)

// newOpenCmd creates the open command
func newOpenCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a workspace",
		Long: `Open every directory of a workspace in the configured editor. Each
directory gets its own editor process; a failure for one directory does
not stop the others.

Example:
  wsp open -w backend`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			report, err := mgr.OpenWorkspace(ctx, name)
			if err != nil {
				return err
			}

			if len(report.Results) == 0 {
				_, _ = fmt.Fprintf(app.Out, "Workspace %s has no directories\n", name)
				return nil
			}

			_, _ = fmt.Fprintf(app.Out, "Opening %s with %s\n", name, report.Editor)
			for _, line := range renderReport(report) {
				_, _ = fmt.Fprintln(app.Out, line)
			}
			if err := report.Err(); err != nil {
				return fmt.Errorf("%d of %d directories failed to open: %w",
					len(report.Failed()), len(report.Results), err)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&name, "workspace", "w", "", "workspace name")
	_ = cmd.MarkFlagRequired("workspace")
	return cmd
}

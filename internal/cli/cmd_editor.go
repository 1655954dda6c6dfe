package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newEditorCmd creates the editor command
func newEditorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "editor [command]",
		Short: "Show or change the editor",
		Long: `Without an argument, print the editor command used by open.
With an argument, store it as the new editor.

Example:
  wsp editor
  wsp editor nvim`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.Manager()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 1 {
				if err := mgr.SetEditor(ctx, args[0]); err != nil {
					return err
				}
			}

			editor, err := mgr.Editor(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(app.Out, editor)
			return nil
		},
	}
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/wsp/internal/workspace"
	"github.com/dshills/wsp/pkg/types"
)

// Output formats for list and show
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// newListCmd creates the list command
func newListCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all workspaces",
		Long: `List every workspace with its directories.

Example:
  wsp list
  wsp list --format yaml`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			list, err := mgr.ListWorkspaces(ctx)
			if err != nil {
				return err
			}

			if len(list) == 0 && format == FormatTable {
				_, _ = fmt.Fprintln(app.Out, "No workspaces found. Create one with: wsp add")
				return nil
			}
			return writeWorkspaces(app, format, list)
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatTable, "output format: table, yaml or json")
	return cmd
}

// writeWorkspaces renders workspaces in the requested format
func writeWorkspaces(app *App, format string, list []*types.Workspace) error {
	switch format {
	case FormatTable:
		_, _ = fmt.Fprintln(app.Out, renderTable(list))
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(app.Out)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(app.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, yaml or json): %w", format, types.ErrInvalidArgument)
	}
}

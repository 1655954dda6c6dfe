package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/wsp/internal/storage"
)

// Build information, set with -ldflags at release time
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// newVersionCmd creates the version command
func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(app.Out, "wsp %s (commit %s, built %s)\n", Version, Commit, BuildDate)
			_, _ = fmt.Fprintf(app.Out, "sqlite driver: %s (%s), schema %s\n",
				storage.DriverName, storage.BuildMode, storage.CurrentSchemaVersion)
			return nil
		},
	}
}

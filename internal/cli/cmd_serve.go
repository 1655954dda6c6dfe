package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/wsp/internal/mcp"
	"github.com/dshills/wsp/internal/workspace"
)

// newServeCmd creates the serve command
func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server on stdio",
		Long: `Expose workspace operations as Model Context Protocol tools over
stdin and stdout. Logs go to stderr. The server stops on SIGINT, SIGTERM
or when stdin is closed.`,
		Args: cobra.NoArgs,
		RunE: withManager(app, func(ctx context.Context, mgr *workspace.Manager) error {
			return serve(ctx, app, mgr)
		}),
	}
}

// serve runs the stdio loop next to a signal watcher. Whichever finishes
// first cancels the other.
func serve(ctx context.Context, app *App, mgr *workspace.Manager) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := mcp.NewServer(mgr, app.logger.Named("mcp"))
	g.Go(func() error {
		defer cancel()
		err := server.Serve(ctx, app.In, app.Out)
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		app.logger.Debug("mcp server stopping", zap.Error(context.Cause(ctx)))
		return nil
	})

	return g.Wait()
}

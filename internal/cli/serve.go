package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/airdb/internal/engine"
	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/session"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Database string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Process events from stdin",
		Long: `Run the engine on a stream of JSON events.

Each input line holds one inbound event. Every outbound event is written as
one line {"event":{...},"seq":N}. The session ends after end_application is
written, when stdin is closed, or on SIGINT/SIGTERM.

With --db an open_database event for PATH is processed before any input.

Example:
  echo '{"type":"start_continent_search"}' | airdb serve --db ./airport.db`,
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "open this SQLite database before reading input")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	logger := configureLogging(opts.RootOptions, cmd.ErrOrStderr())

	eng := engine.New(engine.WithLogger(logger))
	sess := session.New(eng, cmd.InOrStdin(), cmd.OutOrStdout(), session.WithLogger(logger))

	if opts.Database != "" {
		sess.Send(event.OpenDatabase{Path: opts.Database})
	}

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("serve starting", "session", sess.ID(), "db", opts.Database)

	err := sess.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return WrapExitError(ExitFailure, "session error", err)
	}

	slog.Debug("serve stopped", "session", sess.ID(), "events", sess.Seq())
	return nil
}

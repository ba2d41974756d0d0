package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/airdb/internal/engine"
	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/fixture"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
	DryRun   bool
}

// SeedResult summarizes a seed run.
type SeedResult struct {
	Fixture  string   `json:"fixture"`
	Records  int      `json:"records"`
	Saved    int      `json:"saved"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <fixture.cue>",
		Short: "Save CUE seed records",
		Long: `Load continents, countries and regions from a CUE file and save
them through the engine, parents first.

Ids in the file are labels: a country's continent_id names a continent of
the same file and is replaced by the key the database assigns to it.

With --dry-run nothing is opened or saved: the save events are printed one
per line, as written in the file, ready to pipe into "airdb serve".

Exit codes:
  0 - Every record was saved
  1 - One or more records were rejected
  2 - Command error (invalid fixture, database not opened, etc.)

Example:
  airdb seed --db ./airport.db ./seed.cue
  airdb seed --dry-run ./seed.cue`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required unless --dry-run)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the save events instead of applying them")

	return cmd
}

func runSeed(opts *SeedOptions, path string, cmd *cobra.Command) error {
	if !opts.DryRun {
		if err := requireDatabase(opts.Database); err != nil {
			return err
		}
	}
	logger := configureLogging(opts.RootOptions, cmd.ErrOrStderr())

	fix, err := fixture.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}
	slog.Debug("fixture loaded", "path", path, "records", fix.Len())

	if opts.DryRun {
		return printSeedEvents(cmd, fix)
	}

	eng := engine.New(engine.WithLogger(logger))
	defer eng.Close()

	if err := openDatabase(cmd, eng, opts.Database); err != nil {
		return err
	}

	rep, err := fix.Apply(cmd.Context(), eng)
	if err != nil {
		return WrapExitError(ExitFailure, "seed interrupted", err)
	}

	result := SeedResult{
		Fixture:  path,
		Records:  fix.Len(),
		Saved:    rep.Saved,
		Failed:   rep.Failed(),
		Failures: rep.Failures,
	}
	for _, f := range rep.Failures {
		slog.Info("record rejected", "detail", f)
	}

	if opts.Format == "json" {
		f := formatter(opts.RootOptions, cmd)
		if result.Failed > 0 {
			msg := fmt.Sprintf("%d record(s) rejected", result.Failed)
			if err := f.Error("E_SEED_FAILED", msg, result); err != nil {
				return err
			}
			return ReportedExitError(ExitFailure, msg)
		}
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, f := range result.Failures {
			fmt.Fprintf(w, "✗ %s\n", f)
		}
		fmt.Fprintf(w, "Seed Summary: %d saved, %d failed, %d total\n", result.Saved, result.Failed, result.Records)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d record(s) rejected", result.Failed))
	}
	return nil
}

// printSeedEvents writes the fixture's save events as "airdb serve" input.
func printSeedEvents(cmd *cobra.Command, fix *fixture.Fixture) error {
	w := cmd.OutOrStdout()
	for _, e := range fix.Events() {
		line, err := event.Encode(e)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to encode event", err)
		}
		fmt.Fprintf(w, "%s\n", line)
	}
	return nil
}

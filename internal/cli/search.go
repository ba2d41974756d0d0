package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/airdb/internal/engine"
	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database  string
	Code      string
	LocalCode string
	Name      string
}

// searchTables are the record types the search command accepts.
var searchTables = []string{"continent", "country", "region"}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <continent|country|region>",
		Short: "Search one table",
		Long: `Run a single filtered search and print the matching records.

Filters are exact and combine with AND; an omitted filter matches every
record. --local-code applies to regions only.

Examples:
  airdb search continent --db ./airport.db
  airdb search country --db ./airport.db --code JP
  airdb search region --db ./airport.db --local-code 13 --format json`,
		Args:          commandArgs(cobra.ExactArgs(1)),
		ValidArgs:     searchTables,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Code, "code", "", "match the continent, country or region code")
	cmd.Flags().StringVar(&opts.LocalCode, "local-code", "", "match the region local code")
	cmd.Flags().StringVar(&opts.Name, "name", "", "match the name")

	return cmd
}

func runSearch(opts *SearchOptions, table string, cmd *cobra.Command) error {
	if err := requireDatabase(opts.Database); err != nil {
		return err
	}
	logger := configureLogging(opts.RootOptions, cmd.ErrOrStderr())

	query, err := searchEvent(opts, table)
	if err != nil {
		return err
	}

	eng := engine.New(engine.WithLogger(logger))
	defer eng.Close()

	if err := openDatabase(cmd, eng, opts.Database); err != nil {
		return err
	}

	var records []any
	for _, o := range eng.Process(cmd.Context(), query) {
		switch ev := o.(type) {
		case event.ContinentSearchResult:
			records = append(records, ev.Continent)
		case event.CountrySearchResult:
			records = append(records, ev.Country)
		case event.RegionSearchResult:
			records = append(records, ev.Region)
		case event.Error:
			return NewExitError(ExitFailure, fmt.Sprintf("search %s: %s", table, ev.Message))
		}
	}

	f := formatter(opts.RootOptions, cmd)
	f.VerboseLog("%d %s records", len(records), table)

	if opts.Format == "json" {
		if records == nil {
			records = []any{}
		}
		return f.Success(records)
	}
	return writeRecords(cmd.OutOrStdout(), records)
}

// searchEvent builds the inbound search event for table from the flags.
func searchEvent(opts *SearchOptions, table string) (event.Inbound, error) {
	if opts.LocalCode != "" && table != "region" {
		return nil, NewExitError(ExitCommandError, "--local-code applies to regions only")
	}

	switch table {
	case "continent":
		return event.StartContinentSearch{ContinentCode: opts.Code, Name: opts.Name}, nil
	case "country":
		return event.StartCountrySearch{CountryCode: opts.Code, Name: opts.Name}, nil
	case "region":
		return event.StartRegionSearch{RegionCode: opts.Code, LocalCode: opts.LocalCode, Name: opts.Name}, nil
	default:
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("unknown table %q: must be one of %s", table, strings.Join(searchTables, ", ")))
	}
}

// openDatabase opens path through the engine, mapping a refusal to a
// command error.
func openDatabase(cmd *cobra.Command, eng *engine.Engine, path string) error {
	for _, o := range eng.Process(cmd.Context(), event.OpenDatabase{Path: path}) {
		if failed, ok := o.(event.DatabaseOpenFailed); ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("failed to open database %s: %s", path, failed.Reason))
		}
	}
	return nil
}

// writeRecords prints one tab-aligned line per record.
func writeRecords(w io.Writer, records []any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range records {
		switch rec := r.(type) {
		case model.Continent:
			fmt.Fprintf(tw, "%d\t%s\t%s\n", rec.ContinentID, rec.ContinentCode, rec.Name)
		case model.Country:
			fmt.Fprintf(tw, "%d\t%s\t%s\tcontinent=%d\n", rec.CountryID, rec.CountryCode, rec.Name, rec.ContinentID)
		case model.Region:
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\tcountry=%d\n", rec.RegionID, rec.RegionCode, rec.LocalCode, rec.Name, rec.CountryID)
		}
	}
	return tw.Flush()
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/format"
	"github.com/neilberkman/scjournal/internal/core/search"
)

var (
	searchLimit    int
	searchShip     string
	searchLocation string
	searchSince    string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search activity logs",
	Long: `Full-text search over every logged activity, newest session first.

Supports FTS5 syntax: phrases ("cargo run"), prefixes (salv*), AND/OR/NOT.

Examples:
  scjournal search bounty
  scjournal search "cargo run" --ship Freelancer
  scjournal search mining --since "last week"`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runSearch),
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchShip, "ship", "", "Only sessions in this ship")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Only sessions at this location")
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Only sessions started after this time")
}

func runSearch(app *appContext, args []string) error {
	query := strings.Join(args, " ")

	opts := search.Options{
		Ship:     searchShip,
		Location: searchLocation,
		Limit:    searchLimit,
	}
	if searchSince != "" {
		since, err := app.parseAt(searchSince)
		if err != nil {
			return err
		}
		opts.Since = since
	}

	results, err := search.WithOptions(app.db, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(app.out, "No results found")
		return nil
	}

	fmt.Fprintf(app.out, "Found %d result(s):\n\n", len(results))
	for _, r := range results {
		when := r.StartTime
		if t, err := format.ParseWhen(r.StartTime, app.now()); err == nil {
			when = app.formatTime(t)
		}
		fmt.Fprintf(app.out, "%s  %s at %s (%s)\n", r.SessionID, r.Ship, r.Location, when)
		fmt.Fprintf(app.out, "    %s\n\n", truncate(r.ActivityText, 100))
	}
	return nil
}

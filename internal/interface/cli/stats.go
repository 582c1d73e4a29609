package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/format"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long: `Display statistics across every logged session: session count, total
playtime of ended sessions, most used ship, ship usage and money totals.

Use --json for the raw statistics object.`,
	Args: cobra.NoArgs,
	RunE: withApp(runStats),
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
}

type shipCount struct {
	Ship  string
	Count int
}

// sortedUsage orders ship usage by count, then name
func sortedUsage(usage map[string]int) []shipCount {
	counts := make([]shipCount, 0, len(usage))
	for ship, n := range usage {
		counts = append(counts, shipCount{Ship: ship, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Ship < counts[j].Ship
	})
	return counts
}

func runStats(app *appContext, args []string) error {
	journal, err := app.db.LoadJournal()
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	stats := journal.Statistics()

	if statsJSON {
		enc := json.NewEncoder(app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	storeStats, err := app.db.GetStats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}
	totals := journal.Totals()

	fmt.Fprintln(app.out, "Journal Statistics")
	fmt.Fprintln(app.out, "==================")
	fmt.Fprintln(app.out)
	fmt.Fprintf(app.out, "Total Sessions:    %d\n", stats.TotalSessions)
	fmt.Fprintf(app.out, "Total Playtime:    %s\n", stats.TotalPlaytime)
	fmt.Fprintf(app.out, "Most Used Ship:    %s\n", stats.MostUsedShip)

	if len(stats.ShipUsage) > 0 {
		fmt.Fprintln(app.out)
		fmt.Fprintln(app.out, "Ship Usage:")
		for _, sc := range sortedUsage(stats.ShipUsage) {
			fmt.Fprintf(app.out, "  %-20s %d\n", sc.Ship, sc.Count)
		}
	}

	fmt.Fprintln(app.out)
	fmt.Fprintf(app.out, "Earnings:          %s\n", format.Currency(totals.Earnings))
	fmt.Fprintf(app.out, "Expenses:          %s\n", format.Currency(totals.Expenses))
	fmt.Fprintf(app.out, "Net Profit:        %s\n", format.Currency(totals.NetProfit))

	if storeStats.TotalSessions > 0 {
		fmt.Fprintln(app.out)
		fmt.Fprintf(app.out, "In Progress:       %d\n", storeStats.OpenSessions)
		fmt.Fprintf(app.out, "Activities Logged: %d\n", storeStats.TotalActivities)
		fmt.Fprintf(app.out, "Oldest Session:    %s\n", app.formatTime(storeStats.OldestSession))
		fmt.Fprintf(app.out, "Newest Session:    %s\n", app.formatTime(storeStats.NewestSession))
		if storeStats.MostVisitedLocation != "" {
			fmt.Fprintf(app.out, "Top Location:      %s (%d sessions)\n", storeStats.MostVisitedLocation, storeStats.MostVisitedCount)
		}
	}

	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/format"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List play sessions",
	Long: `List sessions in the order they were logged, most recent last.

--limit keeps only the most recent sessions; 0 shows all of them.
The default comes from list_limit in the config file.

Examples:
  scjournal list
  scjournal list --limit 5
  scjournal list --limit 0`,
	Args: cobra.NoArgs,
	RunE: withApp(runList),
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", -1, "Number of most recent sessions to show (0 = all, default from config)")
}

func runList(app *appContext, args []string) error {
	limit := listLimit
	if limit < 0 {
		limit = app.cfg.ListLimit
	}

	sessions, err := app.db.ListSessions(limit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(app.out, "No sessions found. Run 'scjournal start' to log one.")
		return nil
	}

	fmt.Fprintf(app.out, "Showing %d session(s)\n\n", len(sessions))
	for i, stored := range sessions {
		s := stored.Session
		fmt.Fprintf(app.out, "[%d] %s\n", i+1, stored.ID)
		fmt.Fprintf(app.out, "    %s\n", s.DescribeShort())
		details := []string{
			fmt.Sprintf("Net: %s", format.Currency(s.NetProfit())),
			fmt.Sprintf("%d activities", len(s.Activities)),
			fmt.Sprintf("started %s", format.Relative(s.StartTime)),
		}
		fmt.Fprintf(app.out, "    %s\n", strings.Join(details, " | "))
		fmt.Fprintln(app.out)
	}

	return nil
}

// truncate shortens s to maxLen runes for single-line display
func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

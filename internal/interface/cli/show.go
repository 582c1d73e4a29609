package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/format"
)

var showCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show one session in full",
	Long: `Show every field and the full activity log of a session. Without an
ID the latest session in progress is shown.

Examples:
  scjournal show 01JT8Q`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runShow),
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(app *appContext, args []string) error {
	var idOrPrefix string
	if len(args) == 1 {
		idOrPrefix = args[0]
	}

	stored, err := app.targetSession(idOrPrefix)
	if err != nil {
		return err
	}
	s := stored.Session

	fmt.Fprintf(app.out, "Session %s\n\n", stored.ID)
	fmt.Fprintf(app.out, "Ship:        %s\n", s.Ship)
	fmt.Fprintf(app.out, "Location:    %s\n", s.Location)
	fmt.Fprintf(app.out, "Started:     %s\n", app.formatTime(s.StartTime))
	if s.EndTime != nil {
		duration, _ := s.Duration()
		fmt.Fprintf(app.out, "Ended:       %s\n", app.formatTime(*s.EndTime))
		fmt.Fprintf(app.out, "Duration:    %s\n", duration)
	} else {
		fmt.Fprintln(app.out, "Ended:       In progress")
	}
	fmt.Fprintln(app.out)
	fmt.Fprintf(app.out, "Earnings:    %s\n", format.Currency(s.Earnings))
	fmt.Fprintf(app.out, "Expenses:    %s\n", format.Currency(s.Expenses))
	fmt.Fprintf(app.out, "Net profit:  %s\n", format.Currency(s.NetProfit()))

	fmt.Fprintln(app.out)
	fmt.Fprintln(app.out, "Activities:")
	if len(s.Activities) == 0 {
		fmt.Fprintln(app.out, "  (none)")
	}
	for i, activity := range s.Activities {
		fmt.Fprintf(app.out, "  %d. %s\n", i+1, activity)
	}

	if s.Notes != "" {
		fmt.Fprintln(app.out)
		fmt.Fprintln(app.out, "Notes:")
		fmt.Fprintf(app.out, "  %s\n", s.Notes)
	}
	return nil
}

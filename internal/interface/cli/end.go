package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/format"
)

var endAt string

var endCmd = &cobra.Command{
	Use:   "end [session-id]",
	Short: "End a play session",
	Long: `End the given session, or the latest session still in progress.

Ending a session that already ended replaces its end time.

Examples:
  scjournal end
  scjournal end 01JT8Q --at "10 minutes ago"`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runEnd),
}

func init() {
	rootCmd.AddCommand(endCmd)
	endCmd.Flags().StringVar(&endAt, "at", "", "End time (default: now)")
}

func runEnd(app *appContext, args []string) error {
	var idOrPrefix string
	if len(args) == 1 {
		idOrPrefix = args[0]
	}

	stored, err := app.targetSession(idOrPrefix)
	if err != nil {
		return err
	}

	end, err := app.parseAt(endAt)
	if err != nil {
		return err
	}

	session := stored.Session
	session.End(end)
	if err := app.db.UpdateSession(stored.ID, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	duration, _ := session.Duration()
	fmt.Fprintf(app.out, "Ended session %s at %s (%s)\n", stored.ID, app.formatTime(end), duration)
	fmt.Fprintf(app.out, "  Net profit: %s\n", format.Currency(session.NetProfit()))
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// sessionFlag selects the session the mutating commands act on
var sessionFlag string

var logCmd = &cobra.Command{
	Use:   "log <activity>",
	Short: "Add an activity to a session",
	Long: `Append an entry to the activity log of the current session.

Examples:
  scjournal log "Bounty hunting near Daymar"
  scjournal log --session 01JT8Q Salvaged a Vulture wreck`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runLog),
}

var noteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Set the notes of a session",
	Long: `Replace the free-form notes of the current session.

Examples:
  scjournal note "Try the Hull A route next time"`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runNote),
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(noteCmd)
	for _, cmd := range []*cobra.Command{logCmd, noteCmd, earnCmd, spendCmd} {
		cmd.Flags().StringVar(&sessionFlag, "session", "", "Session ID or prefix (default: latest in progress)")
	}
}

func runLog(app *appContext, args []string) error {
	stored, err := app.targetSession(sessionFlag)
	if err != nil {
		return err
	}

	activity := strings.Join(args, " ")
	stored.Session.AddActivity(activity)
	if err := app.db.UpdateSession(stored.ID, stored.Session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(app.out, "Logged: %s\n", activity)
	return nil
}

func runNote(app *appContext, args []string) error {
	stored, err := app.targetSession(sessionFlag)
	if err != nil {
		return err
	}

	stored.Session.Notes = strings.Join(args, " ")
	if err := app.db.UpdateSession(stored.ID, stored.Session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(app.out, "Notes updated")
	return nil
}

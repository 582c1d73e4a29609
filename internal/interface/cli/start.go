package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/format"
	"github.com/neilberkman/scjournal/internal/core/models"
)

var (
	startShip     string
	startLocation string
	startAt       string
	startNotes    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new play session",
	Long: `Start logging a new play session.

--at accepts dates ("2025-05-01 19:00") and natural language ("20 minutes ago").

Examples:
  scjournal start --ship "Cutlass Black" --location Lorville
  scjournal start -s Freelancer -l Area18 --at "30 minutes ago"`,
	Args: cobra.NoArgs,
	RunE: withApp(runStart),
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVarP(&startShip, "ship", "s", "", "Ship you are flying")
	startCmd.Flags().StringVarP(&startLocation, "location", "l", "", "Where the session starts")
	startCmd.Flags().StringVar(&startAt, "at", "", "Start time (default: now)")
	startCmd.Flags().StringVar(&startNotes, "notes", "", "Free-form notes")
}

func runStart(app *appContext, args []string) error {
	if !format.ValidateShipName(startShip) {
		return ErrInvalidShip
	}
	if !format.ValidateLocation(startLocation) {
		return ErrInvalidLocation
	}

	start, err := app.parseAt(startAt)
	if err != nil {
		return err
	}

	if open, err := app.db.LatestOpenSession(); err == nil {
		fmt.Fprintf(app.errOut, "Warning: session %s is still in progress\n", open.ID)
	} else if !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to check open sessions: %w", err)
	}

	session := models.NewSession(start, startLocation, startShip)
	session.Notes = startNotes

	sessionID, err := app.db.InsertSession(session)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(app.out, "Started session %s at %s\n", sessionID, app.formatTime(start))
	fmt.Fprintf(app.out, "  %s at %s\n", session.Ship, session.Location)
	return nil
}

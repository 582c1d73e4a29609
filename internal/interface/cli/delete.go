package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a play session",
	Long: `Delete a session and its activity log. The ID may be any unique prefix.

Examples:
  scjournal delete 01JT8Q`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runDelete),
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(app *appContext, args []string) error {
	stored, err := app.db.GetSession(args[0])
	if err != nil {
		return err
	}

	if err := app.db.DeleteSession(stored.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Fprintf(app.out, "Deleted session %s\n", stored.ID)
	fmt.Fprintf(app.out, "  %s\n", stored.Session.DescribeShort())
	return nil
}

package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/core/format"
)

var earnCmd = &cobra.Command{
	Use:   "earn <amount> [description]",
	Short: "Record earnings for a session",
	Long: `Add to the earnings of the current session. A description is also
logged as an activity. Put negative amounts after "--" so they are not
read as flags.

Examples:
  scjournal earn 15000 VLRT bounty
  scjournal earn 4200.50
  scjournal earn -- -500 Refund clawed back`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runEarn),
}

var spendCmd = &cobra.Command{
	Use:   "spend <amount> [description]",
	Short: "Record expenses for a session",
	Long: `Add to the expenses of the current session. A description is also
logged as an activity.

Examples:
  scjournal spend 3200 Refuel and rearm
  scjournal spend -- -250 Insurance refund`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(runSpend),
}

func init() {
	rootCmd.AddCommand(earnCmd)
	rootCmd.AddCommand(spendCmd)
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid amount %q: must be a finite number", s)
	}
	return amount, nil
}

func runEarn(app *appContext, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	stored, err := app.targetSession(sessionFlag)
	if err != nil {
		return err
	}

	stored.Session.AddEarnings(amount, strings.Join(args[1:], " "))
	if err := app.db.UpdateSession(stored.ID, stored.Session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(app.out, "Earned %s (session net: %s)\n",
		format.Currency(amount), format.Currency(stored.Session.NetProfit()))
	return nil
}

func runSpend(app *appContext, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	stored, err := app.targetSession(sessionFlag)
	if err != nil {
		return err
	}

	stored.Session.AddExpense(amount, strings.Join(args[1:], " "))
	if err := app.db.UpdateSession(stored.ID, stored.Session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(app.out, "Spent %s (session net: %s)\n",
		format.Currency(amount), format.Currency(stored.Session.NetProfit()))
	return nil
}

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neilberkman/scjournal/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI browser",
	Long:  "Launch an interactive terminal UI for browsing, searching and summarizing logged sessions",
	RunE:  withApp(runTUI),
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(app *appContext, args []string) error {
	model := tui.New(app.db, app.cfg.TimeLayout)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/scjournal/internal/core/format"
)

func (m Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "t":
		m.mode = listView
		return m, nil
	}
	return m, nil
}

func (m Model) viewStats() string {
	if m.stats == nil {
		return "Loading statistics..."
	}
	st := m.stats.statistics
	var b strings.Builder

	b.WriteString(titleStyle.Render("Journal Statistics") + "\n\n")
	b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("Total sessions:"), st.TotalSessions))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Total playtime:"), st.TotalPlaytime))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Most used ship:"), st.MostUsedShip))

	if len(st.ShipUsage) > 0 {
		ships := make([]string, 0, len(st.ShipUsage))
		for ship := range st.ShipUsage {
			ships = append(ships, ship)
		}
		sort.Slice(ships, func(i, j int) bool {
			if st.ShipUsage[ships[i]] != st.ShipUsage[ships[j]] {
				return st.ShipUsage[ships[i]] > st.ShipUsage[ships[j]]
			}
			return ships[i] < ships[j]
		})

		b.WriteString("\n" + labelStyle.Render("Ship usage") + "\n")
		maxCount := st.ShipUsage[ships[0]]
		for _, ship := range ships {
			n := st.ShipUsage[ship]
			bar := strings.Repeat("█", 1+n*19/maxCount)
			b.WriteString(fmt.Sprintf("  %-20s %s %d\n", ship, timestampStyle.Render(bar), n))
		}
	}

	totals := m.stats.totals
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Earnings:  "), format.Currency(totals.Earnings)))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Expenses:  "), format.Currency(totals.Expenses)))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Net profit:"), moneyStyle(totals.NetProfit).Render(format.Currency(totals.NetProfit))))

	if store := m.stats.store; store != nil && store.TotalSessions > 0 {
		b.WriteString("\n")
		b.WriteString(timestampStyle.Render(fmt.Sprintf("%d in progress • %d activities • first session %s",
			store.OpenSessions, store.TotalActivities, format.Relative(store.OldestSession))))
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render("esc back • q back • ? help"))
	return b.String()
}

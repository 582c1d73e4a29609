package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/scjournal/internal/core/format"
)

func createViewport(item sessionItem, timeLayout string, width, height int) viewport.Model {
	vp := viewport.New(width, height-2)
	vp.SetContent(renderSession(item, timeLayout, width))
	return vp
}

func renderSession(item sessionItem, timeLayout string, width int) string {
	s := item.Session
	var b strings.Builder

	if width <= 0 {
		width = 80
	}

	b.WriteString(titleStyle.Render(s.DescribeShort()) + "\n")
	b.WriteString(timestampStyle.Render(item.ID) + "\n")
	b.WriteString(strings.Repeat("─", width) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", label+":")), value))
	}

	field("Ship", s.Ship)
	field("Location", s.Location)
	field("Started", format.DateTime(s.StartTime, timeLayout)+" "+timestampStyle.Render("("+format.Relative(s.StartTime)+")"))
	if s.EndTime != nil {
		duration, _ := s.Duration()
		field("Ended", format.DateTime(*s.EndTime, timeLayout))
		field("Duration", duration)
	} else {
		field("Ended", inProgressItemStyle.Render("In progress"))
	}
	b.WriteString("\n")

	field("Earnings", format.Currency(s.Earnings))
	field("Expenses", format.Currency(s.Expenses))
	field("Net profit", moneyStyle(s.NetProfit()).Render(format.Currency(s.NetProfit())))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Activities") + "\n")
	if len(s.Activities) == 0 {
		b.WriteString(timestampStyle.Render("  (none logged)") + "\n")
	}
	for i, activity := range s.Activities {
		b.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, activity))
	}

	if s.Notes != "" {
		b.WriteString("\n" + labelStyle.Render("Notes") + "\n")
		b.WriteString("  " + s.Notes + "\n")
	}

	return b.String()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = listView
		m.status = ""
		return m, nil

	case "c":
		if m.currentSession != nil {
			return m, copyToClipboard(m.currentSession.Session.DescribeShort())
		}
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewDetail() string {
	footer := "j/k scroll • g/G top/bottom • c copy summary • esc back • ? help"
	if m.status != "" {
		footer = statusStyle.Render(m.status) + " • " + footer
	}
	return m.viewport.View() + "\n" + footer
}

package tui

import "github.com/charmbracelet/lipgloss"

func (a *App) renderWorkflows() string {
	width := a.contentWidth()
	header := titleStyle.Render("Workflows") + "\n" +
		mutedStyle.Render("Automate your AI processes with workflows.")
	alert := alertStyle.Width(min(width-4, 72)).Render(
		lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Render("Coming Soon") + "\n" +
			"Workflows feature is currently in development and will be available soon.")

	cardWidth := max((min(width, 100)-6)/2, 24)
	cards := make([]string, 0, len(a.workflows))
	for _, w := range a.workflows {
		body := lipgloss.NewStyle().Bold(true).Render(w.Title) + "\n" +
			"Example workflow (coming soon)\n\n" +
			w.Description
		cards = append(cards, disabledCardStyle.Width(cardWidth).Render(body))
	}
	var grid string
	if width >= 2*cardWidth+6 && len(cards) > 1 {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, interleave(cards, "  ")...)
	} else {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return header + "\n\n" + alert + "\n\n" + grid
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 26

func (a *App) renderSidebar(height int) string {
	inner := sidebarWidth - 2
	lines := []string{
		logoStyle.Render("Za") + " " + titleStyle.Render("Zams"),
		faintStyle.Render("Platform UI"),
		"",
		faintStyle.Render("Platform"),
	}
	for _, p := range []page{pageModels, pageDatasources, pageWorkflows, pageSettings} {
		label := p.String()
		if p == pageWorkflows {
			label += " " + mutedBadgeStyle.Render("Coming soon")
		}
		if p == a.page {
			lines = append(lines, navActiveStyle.Width(inner).Render("▍"+label))
		} else {
			lines = append(lines, navStyle.Render(" "+label))
		}
	}
	lines = append(lines, "", buttonStyle.Render("✦ Build a Model"))

	user := a.cfg.User
	userBlock := lipgloss.JoinHorizontal(lipgloss.Top,
		logoStyle.Render(user.Initials), " ",
		titleStyle.Render(truncate(user.Name, inner-5))+"\n"+faintStyle.Render(truncate(user.Email, inner-5)))

	top := strings.Join(lines, "\n")
	gap := height - lipgloss.Height(top) - lipgloss.Height(userBlock) - 2
	if gap < 1 {
		gap = 1
	}
	body := top + strings.Repeat("\n", gap) + userBlock
	return sidebarStyle.Width(sidebarWidth).Render(body)
}

// Package styles holds the lipgloss styles shared by the CLI commands.
package styles

import (
	"charm.land/lipgloss/v2"
)

var (
	// Board layout
	ColumnWidth = 32

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C792EA"))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7089"))

	ColumnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(ColumnWidth)

	LockedBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF5370"))

	CardIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7089"))

	VoteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFCB6B"))

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C3E88D"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5370"))
)

// ColumnTitle renders a column header in the column's own color, with a lock
// badge when the column is closed for new cards.
func ColumnTitle(title, color string, locked bool) string {
	rendered := ColumnTitleStyle.Foreground(lipgloss.Color(color)).Render(title)
	if locked {
		rendered += " " + LockedBadgeStyle.Render("🔒")
	}
	return rendered
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tallyhq/tally/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders text with the dim style.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return StyleHeader.Render(upper) + "\n" + StyleDim.Render(line)
}

// SourceBadge labels which resolution strategy produced a team member.
func SourceBadge(source domain.TeamSource) string {
	switch source {
	case domain.TeamSourceMembership:
		return StyleGreen.Render("● roster")
	case domain.TeamSourceStats:
		return StyleBlue.Render("◆ stats")
	case domain.TeamSourceEntries:
		return StyleYellow.Render("○ entries")
	default:
		return StyleDim.Render(string(source))
	}
}

// BudgetIndicator returns a colored budget state string.
func BudgetIndicator(overBudget bool) string {
	if overBudget {
		return StyleRed.Render("▲ OVER BUDGET")
	}
	return StyleGreen.Render("● WITHIN BUDGET")
}

// EditedMark flags an entry whose times were changed after recording.
func EditedMark(edited bool) string {
	if edited {
		return StyleYellow.Render("✎")
	}
	return ""
}

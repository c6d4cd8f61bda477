package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tallyhq/tally/internal/cli/formatter"
)

// tallyHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func tallyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// clockInput returns a huh.Input for a required HH:MM field.
func clockInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "09:00"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateClockTime)
}

// editTimesForm collects new start and end times for an entry edit.
func editTimesForm(start, end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			clockInput("New start (HH:MM)", *start, start),
			clockInput("New end (HH:MM)", *end, end),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}

// validateClockTime requires a HH:MM clock time.
func validateClockTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

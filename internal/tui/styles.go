// Package tui provides the terminal dashboard for choreboard.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleHour is used for hour bucket labels.
	StyleHour = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleTaskType is used for task types.
	StyleTaskType = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleAssignee is used for household member names.
	StyleAssignee = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// StyleDuration is used for duration values.
	StyleDuration = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleNote is used for task descriptions.
	StyleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)

	// StyleWarning is used for status messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleSuccess is used for totals.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMuted is used for muted text.
	StyleMuted = StyleSubtitle
)

// Box styles for the dashboard sections.
var (
	// StyleDayBox frames the hourly schedule.
	StyleDayBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleSummaryBox frames the monthly summary.
	StyleSummaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleTodayBox frames the schedule when the selected day is today.
	StyleTodayBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(1, 2).
			MarginBottom(1)
)

// ProgressBar creates a progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var bar strings.Builder
	for i := 0; i < filled; i++ {
		bar.WriteString(filledStyle.Render("█")) // Full block
	}
	for i := 0; i < empty; i++ {
		bar.WriteString(emptyStyle.Render("░")) // Light shade
	}
	return bar.String()
}

// FormatTaskLabel formats "type - assignee" with styles.
func FormatTaskLabel(taskType, assignee string) string {
	if assignee == "" {
		return StyleTaskType.Render(taskType)
	}
	return StyleTaskType.Render(taskType) + " - " + StyleAssignee.Render(assignee)
}

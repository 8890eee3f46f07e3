package tui

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/output"
)

// maxTrendRows bounds the trend list in the summary box.
const maxTrendRows = 10

// DayComponent displays the occupied hours of one day.
type DayComponent struct {
	Day     *dayview.DayView
	Names   map[int64]string
	Width   int
	IsToday bool
}

// NewDayComponent creates a new day component.
func NewDayComponent(day *dayview.DayView, names map[int64]string, width int, isToday bool) *DayComponent {
	return &DayComponent{Day: day, Names: names, Width: width, IsToday: isToday}
}

// View renders the day component.
func (dc *DayComponent) View() string {
	var content strings.Builder

	title := "Schedule"
	if dc.Day != nil {
		title = dc.Day.Date
		if dc.IsToday {
			title += " (today)"
		}
	}
	content.WriteString(StyleTitle.Render(title))
	content.WriteString("\n")

	var occupied []dayview.Bucket
	if dc.Day != nil {
		occupied = dc.Day.Occupied()
	}
	if len(occupied) == 0 {
		content.WriteString(StyleMuted.Render("No chores scheduled"))
	} else {
		for i, b := range occupied {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(StyleHour.Render(b.Label))
			for j := range b.Tasks {
				content.WriteString("\n")
				content.WriteString(dc.renderTask(&b.Tasks[j]))
			}
		}
		content.WriteString("\n\n")
		content.WriteString(StyleSuccess.Render(fmt.Sprintf("%d tasks, %s",
			dc.Day.TotalTasks, output.FormatMinutes(dc.Day.TotalDurationMinutes))))
	}

	box := StyleDayBox
	if dc.IsToday {
		box = StyleTodayBox
	}
	return box.Width(dc.Width - 4).Render(content.String())
}

func (dc *DayComponent) renderTask(t *model.Task) string {
	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(StyleSubtitle.Render(t.Time))
	sb.WriteString("  ")
	sb.WriteString(FormatTaskLabel(t.TaskType, output.Assignee(t, dc.Names)))
	sb.WriteString("  ")
	sb.WriteString(StyleDuration.Render(output.FormatMinutes(t.Duration)))

	if t.Description != "" {
		sb.WriteString("\n    ")
		sb.WriteString(StyleNote.Render(fmt.Sprintf("%q", t.Description)))
	}
	return sb.String()
}

// SummaryComponent displays an analysis report for a period.
type SummaryComponent struct {
	Title  string
	Report analysis.Report
	Width  int
}

// NewSummaryComponent creates a new summary component.
func NewSummaryComponent(title string, report analysis.Report, width int) *SummaryComponent {
	return &SummaryComponent{Title: title, Report: report, Width: width}
}

// View renders the summary component.
func (sc *SummaryComponent) View() string {
	var content strings.Builder
	s := sc.Report.Summary

	content.WriteString(StyleTitle.Render(sc.Title))
	content.WriteString("\n")

	if s.TotalTasks == 0 {
		content.WriteString(StyleMuted.Render("No chores logged"))
		return StyleSummaryBox.Width(sc.Width - 4).Render(content.String())
	}

	content.WriteString(fmt.Sprintf("Total tasks: %s\n", StyleDuration.Render(fmt.Sprint(s.TotalTasks))))
	content.WriteString(fmt.Sprintf("Total time: %s\n", StyleDuration.Render(
		fmt.Sprintf("%d hours %d minutes", s.Hours(), s.Minutes()))))

	barWidth := sc.Width - 40
	if barWidth < 10 {
		barWidth = 10
	}
	content.WriteString("\n")
	for _, tc := range s.Breakdown() {
		pct := float64(tc.Count) / float64(s.TotalTasks) * 100
		content.WriteString(fmt.Sprintf("%-18s %s %3d\n",
			truncate(tc.TaskType, 18), ProgressBar(pct, barWidth), tc.Count))
	}

	trend := sc.Report.Trend
	if len(trend) > maxTrendRows {
		trend = trend[len(trend)-maxTrendRows:]
	}
	content.WriteString("\n")
	for _, p := range trend {
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%s  %2d tasks  %s",
			p.Date, p.TaskCount, output.FormatMinutes(p.TotalDurationMinutes))))
		content.WriteString("\n")
	}

	return StyleSummaryBox.Width(sc.Width - 4).Render(strings.TrimRight(content.String(), "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"←/h", "prev day"},
		{"→/l", "next day"},
		{"t", "today"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

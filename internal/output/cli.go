package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/calendar"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleTaskType = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	styleToday = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)
)

// CLIFormatter provides human-readable terminal output.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) style(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.style(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.style(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.style(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.style(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.style(styleMuted, text))
}

// TaskType formats a task type label.
func (c *CLIFormatter) TaskType(name string) string {
	return c.style(styleTaskType, name)
}

// Tasks prints a task table.
func (c *CLIFormatter) Tasks(tasks []model.Task, users []model.User) error {
	if len(tasks) == 0 {
		c.Muted("No tasks found.")
		return nil
	}

	names := UserNames(users)
	rows := make([]TableRow, len(tasks))
	total := 0
	for i := range tasks {
		t := &tasks[i]
		rows[i] = TableRow{Columns: []string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			t.Time,
			t.TaskType,
			Assignee(t, names),
			FormatMinutes(t.Duration),
			truncate(t.Description, c.Width()/3),
		}}
		total += t.Duration
	}
	c.PrintTable([]string{"ID", "DATE", "TIME", "TYPE", "ASSIGNEE", "DURATION", "DESCRIPTION"}, rows)
	c.Println()
	c.Muted(fmt.Sprintf("%d tasks, %s total", len(tasks), FormatMinutes(total)))
	return nil
}

// Task prints one task.
func (c *CLIFormatter) Task(t *model.Task, users []model.User) error {
	c.Printf("Task %d: %s\n", t.ID, c.TaskType(t.TaskType))
	c.Printf("  When: %s %s\n", t.Date, t.Time)
	c.Printf("  Duration: %s\n", FormatMinutes(t.Duration))
	c.Printf("  Assignee: %s\n", Assignee(t, UserNames(users)))
	if t.Description != "" {
		c.Printf("  Description: %s\n", t.Description)
	}
	return nil
}

// Users prints a user table.
func (c *CLIFormatter) Users(users []model.User) error {
	if len(users) == 0 {
		c.Muted("No users yet.")
		c.Muted("Use 'choreboard user add <name>' to add one.")
		return nil
	}
	rows := make([]TableRow, len(users))
	for i, u := range users {
		rows[i] = TableRow{Columns: []string{strconv.FormatInt(u.ID, 10), u.Name}}
	}
	c.PrintTable([]string{"ID", "NAME"}, rows)
	return nil
}

// User prints one user.
func (c *CLIFormatter) User(u *model.User) error {
	c.Success(fmt.Sprintf("User %d: %s", u.ID, u.Name))
	return nil
}

// TaskTypes prints the task type list.
func (c *CLIFormatter) TaskTypes(types []string) error {
	for _, t := range types {
		c.Println("  " + c.TaskType(t))
	}
	return nil
}

// DayView prints the occupied hours of a day.
func (c *CLIFormatter) DayView(v *dayview.DayView, users []model.User) error {
	c.Title(fmt.Sprintf("Tasks for %s", v.Date))
	if v.TotalTasks == 0 {
		c.Muted("No tasks scheduled.")
		return nil
	}

	names := UserNames(users)
	for _, b := range v.Occupied() {
		c.Println(c.style(styleBold, b.Label))
		for i := range b.Tasks {
			t := &b.Tasks[i]
			line := fmt.Sprintf("  %s  %s (%s) - %s", t.Time, c.TaskType(t.TaskType), FormatMinutes(t.Duration), Assignee(t, names))
			if t.Description != "" {
				line += "  " + c.style(styleMuted, truncate(t.Description, c.Width()/2))
			}
			c.Println(line)
		}
	}
	c.Println()
	footer := fmt.Sprintf("%d tasks, %s total", v.TotalTasks, FormatMinutes(v.TotalDurationMinutes))
	if b := v.Busiest(); b != nil && len(b.Tasks) > 1 {
		footer += fmt.Sprintf(", busiest hour %s", b.Label)
	}
	c.Muted(footer)
	return nil
}

// Report prints a summary, a per-type breakdown and the trend.
func (c *CLIFormatter) Report(start, end string, r analysis.Report) error {
	c.Title(fmt.Sprintf("Analysis %s to %s", start, end))
	c.Printf("  Total tasks: %d\n", r.Summary.TotalTasks)
	c.Printf("  Total time: %d hours %d minutes\n", r.Summary.Hours(), r.Summary.Minutes())

	if r.Summary.TotalTasks == 0 {
		return nil
	}

	c.Println()
	c.Println(c.style(styleBold, "By type"))
	for _, tc := range r.Summary.Breakdown() {
		pct := float64(tc.Count) / float64(r.Summary.TotalTasks) * 100
		c.Printf("  %-20s %4d  %s\n", tc.TaskType, tc.Count, ProgressBar(pct, 20))
	}

	c.Println()
	c.Println(c.style(styleBold, "Trend"))
	rows := make([]TableRow, len(r.Trend))
	for i, p := range r.Trend {
		rows[i] = TableRow{Columns: []string{p.Date, strconv.Itoa(p.TaskCount), FormatMinutes(p.TotalDurationMinutes)}}
	}
	c.PrintTable([]string{"DATE", "TASKS", "TIME"}, rows)
	return nil
}

// Calendar prints a month or week grid with task counts per day.
func (c *CLIFormatter) Calendar(g calendar.Grid) error {
	c.Title(g.Title())

	header := make([]string, 7)
	for i, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		header[i] = fmt.Sprintf("%-8s", d)
	}
	c.Println(c.style(styleBold, strings.Join(header, "")))

	// Pad the first row so days line up under their weekday.
	offset := 0
	if len(g.Days) > 0 {
		offset = weekdayIndex(g.Days[0].Weekday)
	}
	var line strings.Builder
	line.WriteString(strings.Repeat(" ", 8*offset))
	col := offset
	for _, d := range g.Days {
		cell := d.Date[8:]
		if d.TaskCount > 0 {
			cell += fmt.Sprintf("(%d)", d.TaskCount)
		}
		cell = fmt.Sprintf("%-8s", cell)
		if d.Date == g.Anchor {
			cell = c.style(styleToday, cell)
		} else if !d.InMonth {
			cell = c.style(styleMuted, cell)
		}
		line.WriteString(cell)
		col++
		if col == 7 {
			c.Println(strings.TrimRight(line.String(), " "))
			line.Reset()
			col = 0
		}
	}
	if line.Len() > 0 {
		c.Println(strings.TrimRight(line.String(), " "))
	}

	c.Println()
	c.Muted(fmt.Sprintf("%d tasks from %s to %s", g.Total(), g.Start, g.End))
	return nil
}

// Message prints a confirmation message.
func (c *CLIFormatter) Message(text string) error {
	c.Success(text)
	return nil
}

func weekdayIndex(short string) int {
	for i, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		if d == short {
			return i
		}
	}
	return 0
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if n < 4 || len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of PrintTable.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.style(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

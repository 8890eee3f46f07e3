package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/calendar"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/model"
)

func newTestFormatter(format Format) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Formatter{Writer: &buf, Format: format, ColorMode: ColorNever}, &buf
}

func sampleUsers() []model.User {
	return []model.User{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, UserID: model.ID(1), TaskType: "Cook meal", Description: "Pasta", Date: "2024-03-01", Time: "09:00", Duration: 30},
		{ID: 2, UserID: model.ID(2), TaskType: "Cook meal", Date: "2024-03-01", Time: "09:15", Duration: 15},
		{ID: 3, TaskType: "Fold laundry", Date: "2024-03-02", Time: "20:00", Duration: 90},
	}
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCLI, "cli": FormatCLI, "JSON": FormatJSON, "plain": FormatPlain} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "always": ColorAlways, "NEVER": ColorNever} {
		got, err := ParseColorMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestIsColorEnabled(t *testing.T) {
	f, _ := newTestFormatter(FormatCLI)
	assert.False(t, f.IsColorEnabled())

	f.ColorMode = ColorAlways
	assert.True(t, f.IsColorEnabled())

	// Plain output never has color.
	f.Format = FormatPlain
	assert.False(t, f.IsColorEnabled())

	// Auto mode on a non-terminal writer.
	f.Format = FormatCLI
	f.ColorMode = ColorAuto
	assert.False(t, f.IsColorEnabled())
}

func TestWidthFallsBack(t *testing.T) {
	f, _ := newTestFormatter(FormatCLI)
	assert.Equal(t, DefaultWidth, f.Width())
}

func TestRendererSelection(t *testing.T) {
	f, _ := newTestFormatter(FormatJSON)
	assert.IsType(t, &JSONFormatter{}, f.Renderer())

	f.Format = FormatPlain
	assert.IsType(t, &CLIFormatter{}, f.Renderer())
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 29m", FormatMinutes(89))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(150, 10))
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(-5, 10))
}

// =============================================================================
// CLI Renderer Tests
// =============================================================================

func TestCLITasks(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	require.NoError(t, NewCLIFormatter(f).Tasks(sampleTasks(), sampleUsers()))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "unassigned")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "3 tasks, 2h 15m total")
}

func TestCLITasksEmpty(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	require.NoError(t, NewCLIFormatter(f).Tasks(nil, nil))
	assert.Contains(t, buf.String(), "No tasks found.")
}

func TestCLITaskUnknownUser(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	task := &model.Task{ID: 9, UserID: model.ID(42), TaskType: "Cook meal", Date: "2024-03-01", Time: "09:00", Duration: 30}
	require.NoError(t, NewCLIFormatter(f).Task(task, sampleUsers()))
	assert.Contains(t, buf.String(), "Task 9: Cook meal")
	assert.Contains(t, buf.String(), "user 42")
}

func TestCLIUsers(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	cli := NewCLIFormatter(f)

	require.NoError(t, cli.Users(nil))
	assert.Contains(t, buf.String(), "No users yet.")

	buf.Reset()
	require.NoError(t, cli.Users(sampleUsers()))
	assert.Contains(t, buf.String(), "Alice")
	assert.NotContains(t, buf.String(), "No users")
}

func TestCLIDayView(t *testing.T) {
	view, err := dayview.Bucketize("2024-03-01", sampleTasks()[:2])
	require.NoError(t, err)

	f, buf := newTestFormatter(FormatCLI)
	require.NoError(t, NewCLIFormatter(f).DayView(view, sampleUsers()))

	out := buf.String()
	assert.Contains(t, out, "Tasks for 2024-03-01")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "09:15")
	assert.NotContains(t, out, "10:00")
	assert.Contains(t, out, "2 tasks, 45m total, busiest hour 09:00")

	// A single task per hour has no busiest hour worth naming.
	view, err = dayview.Bucketize("2024-03-01", sampleTasks()[:1])
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, NewCLIFormatter(f).DayView(view, sampleUsers()))
	assert.NotContains(t, buf.String(), "busiest")
}

func TestCLIReport(t *testing.T) {
	f, buf := newTestFormatter(FormatCLI)
	report := analysis.Analyze(sampleTasks())
	require.NoError(t, NewCLIFormatter(f).Report("2024-03-01", "2024-03-31", report))

	out := buf.String()
	assert.Contains(t, out, "Analysis 2024-03-01 to 2024-03-31")
	assert.Contains(t, out, "Total tasks: 3")
	assert.Contains(t, out, "Total time: 2 hours 15 minutes")
	assert.Contains(t, out, "Cook meal")
	assert.Contains(t, out, "2024-03-02")
}

func TestCLICalendar(t *testing.T) {
	grid := calendar.Build(calendar.ViewMonth, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), sampleTasks())

	f, buf := newTestFormatter(FormatCLI)
	require.NoError(t, NewCLIFormatter(f).Calendar(grid))

	out := buf.String()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "01(2)")
	assert.Contains(t, out, "02(1)")
	assert.Contains(t, out, "3 tasks from 2024-03-01 to 2024-03-31")
}

// =============================================================================
// JSON Renderer Tests
// =============================================================================

func TestJSONTasksEmptyIsArray(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, NewJSONFormatter(f).Tasks(nil, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestJSONTask(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, NewJSONFormatter(f).Task(&sampleTasks()[2], nil))
	assert.JSONEq(t, `{"id":3,"user_id":null,"task_type":"Fold laundry","description":"","date":"2024-03-02","time":"20:00","duration":90}`, buf.String())
}

func TestJSONReport(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	report := analysis.Analyze(sampleTasks()[:2])
	require.NoError(t, NewJSONFormatter(f).Report("2024-03-01", "2024-03-01", report))

	assert.JSONEq(t, `{
		"start_date": "2024-03-01",
		"end_date": "2024-03-01",
		"summary": {"total_tasks": 2, "total_duration_minutes": 45, "counts_by_type": {"Cook meal": 2}},
		"trend": [{"date": "2024-03-01", "task_count": 2, "total_duration_minutes": 45}]
	}`, buf.String())
}

func TestJSONMessage(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, NewJSONFormatter(f).Message("Task deleted successfully"))

	var got MessageResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Task deleted successfully", got.Message)
}

func TestJSONEmptyReportTrendIsArray(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	require.NoError(t, NewJSONFormatter(f).Report("", "", analysis.Report{Summary: analysis.Summarize(nil)}))
	assert.Contains(t, buf.String(), `"trend": []`)
	assert.NotContains(t, buf.String(), "start_date")
}

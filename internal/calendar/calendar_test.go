package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

// =============================================================================
// View Tests
// =============================================================================

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want View
	}{
		{"", ViewMonth},
		{"month", ViewMonth},
		{"Week", ViewWeek},
		{" week ", ViewWeek},
	}
	for _, tt := range tests {
		got, err := ParseView(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseView("year")
	assert.True(t, errors.IsValidation(err))
}

// =============================================================================
// Day Range Tests
// =============================================================================

func TestMonthDays(t *testing.T) {
	days := MonthDays(day(2024, time.February, 17))
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0].Format(model.DateLayout))
	assert.Equal(t, "2024-02-29", days[28].Format(model.DateLayout))

	assert.Len(t, MonthDays(day(2023, time.February, 1)), 28)
	assert.Len(t, MonthDays(day(2024, time.December, 31)), 31)
}

func TestWeekDaysStartsOnSunday(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	days := WeekDays(day(2024, time.March, 6))
	require.Len(t, days, 7)
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.Equal(t, "2024-03-03", days[0].Format(model.DateLayout))
	assert.Equal(t, "2024-03-09", days[6].Format(model.DateLayout))

	// A Sunday anchors its own week.
	days = WeekDays(day(2024, time.March, 3))
	assert.Equal(t, "2024-03-03", days[0].Format(model.DateLayout))
}

func TestWeekDaysCrossesMonth(t *testing.T) {
	days := WeekDays(day(2024, time.March, 1))
	assert.Equal(t, "2024-02-25", days[0].Format(model.DateLayout))
	assert.Equal(t, "2024-03-02", days[6].Format(model.DateLayout))
}

func TestShift(t *testing.T) {
	next := Shift(ViewMonth, day(2024, time.January, 31), 1)
	assert.Equal(t, "2024-02-01", next.Format(model.DateLayout))

	prev := Shift(ViewMonth, day(2024, time.January, 15), -1)
	assert.Equal(t, "2023-12-01", prev.Format(model.DateLayout))

	week := Shift(ViewWeek, day(2024, time.March, 6), -1)
	assert.Equal(t, "2024-02-28", week.Format(model.DateLayout))
}

func TestRange(t *testing.T) {
	start, end := Range(ViewMonth, day(2024, time.April, 9))
	assert.Equal(t, "2024-04-01", start.Format(model.DateLayout))
	assert.Equal(t, "2024-04-30", end.Format(model.DateLayout))

	start, end = Range(ViewWeek, day(2024, time.April, 9))
	assert.Equal(t, "2024-04-07", start.Format(model.DateLayout))
	assert.Equal(t, "2024-04-13", end.Format(model.DateLayout))
}

// =============================================================================
// Grid Tests
// =============================================================================

func gridTasks() []model.Task {
	return []model.Task{
		{ID: 1, TaskType: "Cook meal", Date: "2024-03-01", Time: "09:00", Duration: 30},
		{ID: 2, TaskType: "Cook meal", Date: "2024-03-01", Time: "18:00", Duration: 45},
		{ID: 3, TaskType: "Fold laundry", Date: "2024-03-05", Time: "10:00", Duration: 20},
		{ID: 4, TaskType: "Fold laundry", Date: "2024-04-02", Time: "10:00", Duration: 20},
	}
}

func TestBuildMonth(t *testing.T) {
	g := Build(ViewMonth, day(2024, time.March, 12), gridTasks())

	assert.Equal(t, ViewMonth, g.View)
	assert.Equal(t, "2024-03-12", g.Anchor)
	assert.Equal(t, "2024-03-01", g.Start)
	assert.Equal(t, "2024-03-31", g.End)
	require.Len(t, g.Days, 31)

	assert.Equal(t, Day{Date: "2024-03-01", Weekday: "Fri", TaskCount: 2, TotalDurationMinutes: 75, InMonth: true}, g.Days[0])
	assert.Equal(t, 1, g.Days[4].TaskCount)
	assert.Equal(t, 0, g.Days[1].TaskCount)
	assert.Equal(t, 3, g.Total())
	assert.Equal(t, "March 2024", g.Title())

	for _, d := range g.Days {
		assert.True(t, d.InMonth)
	}
}

func TestBuildWeekMarksOutsideDays(t *testing.T) {
	g := Build(ViewWeek, day(2024, time.March, 1), gridTasks())

	require.Len(t, g.Days, 7)
	assert.Equal(t, "2024-02-25", g.Start)
	assert.Equal(t, "2024-03-02", g.End)
	assert.False(t, g.Days[0].InMonth)
	assert.True(t, g.Days[5].InMonth)
	assert.Equal(t, 2, g.Days[5].TaskCount)
	assert.Equal(t, 2, g.Total())
	assert.Equal(t, "Week of 2024-02-25", g.Title())
}

func TestBuildEmpty(t *testing.T) {
	g := Build(ViewMonth, day(2024, time.June, 1), nil)
	require.Len(t, g.Days, 30)
	assert.Equal(t, 0, g.Total())
}

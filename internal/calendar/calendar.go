// Package calendar lays tasks out on month and week grids with per-day counts.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
)

// View selects the grid shape.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
)

// Day is one cell of a grid.
type Day struct {
	Date                 string `json:"date"`
	Weekday              string `json:"weekday"`
	TaskCount            int    `json:"task_count"`
	TotalDurationMinutes int    `json:"total_duration_minutes"`
	InMonth              bool   `json:"in_month"`
}

// Grid is a contiguous run of days around an anchor date.
type Grid struct {
	View   View   `json:"view"`
	Anchor string `json:"anchor"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Days   []Day  `json:"days"`
}

// ParseView accepts "month" or "week", case-insensitively. Empty means month.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewMonth:
		return ViewMonth, nil
	case ViewWeek:
		return ViewWeek, nil
	}
	return "", errors.NewValidationErrorWithValue("view", s,
		"must be month or week", "Use view=month or view=week", nil)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthDays returns every day of the anchor's month.
func MonthDays(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekDays returns the Sunday-start week containing anchor.
func WeekDays(anchor time.Time) []time.Time {
	start := dateOnly(anchor)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Range returns the first and last dates of the grid for view around anchor.
func Range(view View, anchor time.Time) (start, end time.Time) {
	var days []time.Time
	if view == ViewWeek {
		days = WeekDays(anchor)
	} else {
		days = MonthDays(anchor)
	}
	return days[0], days[len(days)-1]
}

// Shift moves anchor one grid forward (n > 0) or back (n < 0). Month views
// land on the first of the target month so short months never skip.
func Shift(view View, anchor time.Time, n int) time.Time {
	if view == ViewWeek {
		return dateOnly(anchor).AddDate(0, 0, 7*n)
	}
	return time.Date(anchor.Year(), anchor.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// Build lays tasks out on the grid for view around anchor. Every day of the
// grid is present; days without tasks carry zero counts. Tasks outside the
// grid are ignored.
func Build(view View, anchor time.Time, tasks []model.Task) Grid {
	var days []time.Time
	if view == ViewWeek {
		days = WeekDays(anchor)
	} else {
		view = ViewMonth
		days = MonthDays(anchor)
	}

	counts := make(map[string]analysis.TrendPoint)
	for _, p := range analysis.Trend(tasks) {
		counts[p.Date] = p
	}

	anchor = dateOnly(anchor)
	g := Grid{
		View:   view,
		Anchor: anchor.Format(model.DateLayout),
		Start:  days[0].Format(model.DateLayout),
		End:    days[len(days)-1].Format(model.DateLayout),
		Days:   make([]Day, len(days)),
	}
	for i, d := range days {
		key := d.Format(model.DateLayout)
		p := counts[key]
		g.Days[i] = Day{
			Date:                 key,
			Weekday:              d.Weekday().String()[:3],
			TaskCount:            p.TaskCount,
			TotalDurationMinutes: p.TotalDurationMinutes,
			InMonth:              d.Month() == anchor.Month(),
		}
	}
	return g
}

// Total returns the number of tasks on the grid.
func (g Grid) Total() int {
	n := 0
	for _, d := range g.Days {
		n += d.TaskCount
	}
	return n
}

// Title is a human heading for the grid, e.g. "March 2024" or
// "Week of 2024-03-03".
func (g Grid) Title() string {
	if g.View == ViewWeek {
		return fmt.Sprintf("Week of %s", g.Start)
	}
	t, err := time.Parse(model.DateLayout, g.Anchor)
	if err != nil {
		return g.Anchor
	}
	return t.Format("January 2006")
}

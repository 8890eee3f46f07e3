// Package analysis aggregates filtered tasks into summary statistics and a
// per-date trend series.
package analysis

import (
	"sort"

	"github.com/manav03panchal/choreboard/internal/model"
)

// Summary holds totals over a task set.
type Summary struct {
	TotalTasks           int            `json:"total_tasks"`
	TotalDurationMinutes int            `json:"total_duration_minutes"`
	CountsByType         map[string]int `json:"counts_by_type"`
}

// Hours returns the whole hours of the total duration.
func (s Summary) Hours() int {
	return s.TotalDurationMinutes / 60
}

// Minutes returns the minutes left over after Hours.
func (s Summary) Minutes() int {
	return s.TotalDurationMinutes % 60
}

// TypeCount is one entry of the per-type breakdown.
type TypeCount struct {
	TaskType string
	Count    int
}

// Breakdown returns CountsByType ordered by count (highest first), then by type.
func (s Summary) Breakdown() []TypeCount {
	out := make([]TypeCount, 0, len(s.CountsByType))
	for taskType, n := range s.CountsByType {
		out = append(out, TypeCount{TaskType: taskType, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].TaskType < out[j].TaskType
	})
	return out
}

// TrendPoint aggregates the tasks of one date.
type TrendPoint struct {
	Date                 string `json:"date"`
	TaskCount            int    `json:"task_count"`
	TotalDurationMinutes int    `json:"total_duration_minutes"`
}

// Report combines a summary and a trend over the same task set.
type Report struct {
	Summary Summary      `json:"summary"`
	Trend   []TrendPoint `json:"trend"`
}

// Summarize counts tasks, sums their durations and counts them per type.
func Summarize(tasks []model.Task) Summary {
	s := Summary{CountsByType: make(map[string]int)}
	for _, t := range tasks {
		s.TotalTasks++
		s.TotalDurationMinutes += t.Duration
		s.CountsByType[t.TaskType]++
	}
	return s
}

// Trend returns one point per distinct date present in tasks, ascending by
// date. Dates without tasks are not synthesized.
func Trend(tasks []model.Task) []TrendPoint {
	byDate := make(map[string]*TrendPoint)
	for _, t := range tasks {
		p, ok := byDate[t.Date]
		if !ok {
			p = &TrendPoint{Date: t.Date}
			byDate[t.Date] = p
		}
		p.TaskCount++
		p.TotalDurationMinutes += t.Duration
	}

	out := make([]TrendPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	// ISO dates sort chronologically as strings.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Analyze builds the summary and trend of tasks.
func Analyze(tasks []model.Task) Report {
	return Report{
		Summary: Summarize(tasks),
		Trend:   Trend(tasks),
	}
}

// TaskTypes returns the configured default types followed by every other
// distinct type present in tasks, sorted.
func TaskTypes(tasks []model.Task, defaults []string) []string {
	seen := make(map[string]bool, len(defaults))
	out := make([]string, 0, len(defaults))
	for _, d := range defaults {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}

	var extra []string
	for _, t := range tasks {
		if t.TaskType == "" || seen[t.TaskType] {
			continue
		}
		seen[t.TaskType] = true
		extra = append(extra, t.TaskType)
	}
	sort.Strings(extra)

	return append(out, extra...)
}

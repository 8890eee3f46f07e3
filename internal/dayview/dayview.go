// Package dayview partitions a day's tasks into 24 hourly buckets.
package dayview

import (
	"fmt"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/validate"
)

// HoursPerDay is the fixed number of buckets in a day view.
const HoursPerDay = 24

// Bucket holds the tasks whose time falls in [Hour:00, Hour+1:00).
type Bucket struct {
	Hour  int          `json:"hour"`
	Label string       `json:"label"`
	Tasks []model.Task `json:"tasks"`
}

// DayView is the hourly schedule of a single date.
type DayView struct {
	Date                 string   `json:"date"`
	Buckets              []Bucket `json:"buckets"`
	TotalTasks           int      `json:"total_tasks"`
	TotalDurationMinutes int      `json:"total_duration_minutes"`
}

// Label returns the display label of an hour bucket, e.g. "07:00".
func Label(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Bucketize places every task in the bucket of its hour. The tasks are
// expected to belong to date already; they are not filtered here. Task order
// is preserved within a bucket and empty buckets are kept.
func Bucketize(date string, tasks []model.Task) (*DayView, error) {
	if err := validate.Date("date", date); err != nil {
		return nil, err
	}

	view := &DayView{
		Date:    date,
		Buckets: make([]Bucket, HoursPerDay),
	}
	// Labels come from the index so DST days still render 24 uniform slots.
	for h := range view.Buckets {
		view.Buckets[h] = Bucket{Hour: h, Label: Label(h), Tasks: []model.Task{}}
	}

	for _, t := range tasks {
		hour, err := validate.Clock(t.Time)
		if err != nil {
			if ve, ok := errors.AsValidation(err); ok {
				ve.Message = fmt.Sprintf("task %d: %s", t.ID, ve.Message)
			}
			return nil, err
		}
		view.Buckets[hour].Tasks = append(view.Buckets[hour].Tasks, t)
		view.TotalTasks++
		view.TotalDurationMinutes += t.Duration
	}

	return view, nil
}

// Bucket returns the bucket for an hour, or nil if hour is out of range.
func (v *DayView) Bucket(hour int) *Bucket {
	if hour < 0 || hour >= len(v.Buckets) {
		return nil
	}
	return &v.Buckets[hour]
}

// Occupied returns the buckets that hold at least one task, in hour order.
func (v *DayView) Occupied() []Bucket {
	var out []Bucket
	for _, b := range v.Buckets {
		if len(b.Tasks) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Busiest returns the bucket with the most tasks; ties go to the earlier hour.
// It returns nil for an empty day.
func (v *DayView) Busiest() *Bucket {
	var best *Bucket
	for i := range v.Buckets {
		b := &v.Buckets[i]
		if len(b.Tasks) == 0 {
			continue
		}
		if best == nil || len(b.Tasks) > len(best.Tasks) {
			best = b
		}
	}
	return best
}

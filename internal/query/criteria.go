// Package query implements task filtering by user, type and date range.
//
// Every criterion is explicitly present or absent; a present zero value (for
// example user id 0) is a real constraint. Active criteria combine with AND.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/validate"
)

// Query parameter names understood by FromValues.
const (
	ParamUserID    = "user_id"
	ParamTaskType  = "task_type"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
)

// Criteria selects tasks. Nil fields impose no constraint.
type Criteria struct {
	UserID    *int64
	TaskType  *string
	StartDate *string
	EndDate   *string
}

// IsEmpty reports whether no criterion is present.
func (c Criteria) IsEmpty() bool {
	return c.UserID == nil && c.TaskType == nil && c.StartDate == nil && c.EndDate == nil
}

// DateRangeActive reports whether the date range filter applies. Both bounds
// must be present; a single bound is ignored.
func (c Criteria) DateRangeActive() bool {
	return c.StartDate != nil && c.EndDate != nil
}

// Match reports whether t satisfies every active criterion.
func (c Criteria) Match(t *model.Task) bool {
	if c.UserID != nil && !t.AssignedTo(*c.UserID) {
		return false
	}
	if c.TaskType != nil && t.TaskType != *c.TaskType {
		return false
	}
	// ISO dates compare lexicographically in chronological order.
	if c.DateRangeActive() && (t.Date < *c.StartDate || t.Date > *c.EndDate) {
		return false
	}
	return true
}

// Filter returns the tasks matching c, in input order. With no criteria the
// input is returned unchanged.
func Filter(tasks []model.Task, c Criteria) []model.Task {
	if c.IsEmpty() {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if c.Match(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// WithUser returns a copy of c restricted to a user.
func (c Criteria) WithUser(id int64) Criteria {
	c.UserID = &id
	return c
}

// WithTaskType returns a copy of c restricted to a task type.
func (c Criteria) WithTaskType(taskType string) Criteria {
	c.TaskType = &taskType
	return c
}

// WithRange returns a copy of c restricted to the inclusive range [start, end].
func (c Criteria) WithRange(start, end string) Criteria {
	c.StartDate = &start
	c.EndDate = &end
	return c
}

// ForDate returns a copy of c restricted to a single date.
func (c Criteria) ForDate(date string) Criteria {
	return c.WithRange(date, date)
}

// Validate checks that present fields are well formed.
func (c Criteria) Validate() error {
	return validate.DateRange(c.StartDate, c.EndDate)
}

// Values encodes c as query parameters, the inverse of FromValues.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.UserID != nil {
		v.Set(ParamUserID, strconv.FormatInt(*c.UserID, 10))
	}
	if c.TaskType != nil {
		v.Set(ParamTaskType, *c.TaskType)
	}
	if c.StartDate != nil {
		v.Set(ParamStartDate, *c.StartDate)
	}
	if c.EndDate != nil {
		v.Set(ParamEndDate, *c.EndDate)
	}
	return v
}

// FromValues parses criteria from query parameters. An empty parameter is
// treated as absent, which is how the browser client sends "all".
func FromValues(v url.Values) (Criteria, error) {
	var c Criteria

	if s := strings.TrimSpace(v.Get(ParamUserID)); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Criteria{}, errors.NewValidationErrorWithValue(ParamUserID, s,
				"must be an integer", "", errors.ErrInvalidID)
		}
		c.UserID = &id
	}
	// Stored task types are trimmed, so the parameter is too. Matching stays
	// exact and case-sensitive.
	if s := strings.TrimSpace(v.Get(ParamTaskType)); s != "" {
		c.TaskType = &s
	}
	if s := strings.TrimSpace(v.Get(ParamStartDate)); s != "" {
		c.StartDate = &s
	}
	if s := strings.TrimSpace(v.Get(ParamEndDate)); s != "" {
		c.EndDate = &s
	}

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// Package validate provides input validation helpers for choreboard.
package validate

import (
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
)

const (
	// MaxNameLength is the maximum length for a user name.
	MaxNameLength = 128
	// MaxTaskTypeLength is the maximum length for a task type label.
	MaxTaskTypeLength = 128
	// MaxDescriptionLength is the maximum length for a task description.
	MaxDescriptionLength = 4096
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRegex = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// UserName validates a user name.
func UserName(name string) error {
	if name == "" {
		return errors.NewValidationErrorWithValue("name", "", "cannot be empty",
			"Provide the household member's name", errors.ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewValidationErrorWithValue("name", TruncateString(name, 32),
			"too long", "Names must be 128 characters or fewer", errors.ErrTooLong)
	}
	return nil
}

// TaskType validates a task type label. Types are free-form.
func TaskType(taskType string) error {
	if taskType == "" {
		return errors.NewValidationError("task_type", "cannot be empty", errors.ErrEmptyTaskType)
	}
	if utf8.RuneCountInString(taskType) > MaxTaskTypeLength {
		return errors.NewValidationErrorWithValue("task_type", TruncateString(taskType, 32),
			"too long", "Task types must be 128 characters or fewer", errors.ErrTooLong)
	}
	return nil
}

// Description validates an optional task description.
func Description(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return errors.NewValidationErrorWithValue("description", "", "too long",
			"Descriptions must be 4096 characters or fewer", errors.ErrTooLong)
	}
	return nil
}

// Date validates an ISO calendar date (YYYY-MM-DD) for the named field.
func Date(field, value string) error {
	if value == "" {
		return errors.NewValidationError(field, "is required", errors.ErrInvalidDate)
	}
	if !dateRegex.MatchString(value) {
		return errors.NewValidationErrorWithValue(field, value, "must be YYYY-MM-DD", "", errors.ErrInvalidDate)
	}
	if _, err := time.Parse(model.DateLayout, value); err != nil {
		return errors.NewValidationErrorWithValue(field, value, "not a calendar date", "", errors.ErrInvalidDate)
	}
	return nil
}

// Clock validates a 24-hour HH:MM time of day and returns its hour.
func Clock(value string) (int, error) {
	if value == "" {
		return 0, errors.NewValidationError("time", "is required", errors.ErrInvalidTime)
	}
	m := clockRegex.FindStringSubmatch(value)
	if m == nil {
		return 0, errors.NewValidationErrorWithValue("time", value, "must be HH:MM", "", errors.ErrInvalidTime)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 {
		return 0, errors.NewValidationErrorWithValue("time", value, "hour must be between 00 and 23", "", errors.ErrInvalidTime)
	}
	if minute > 59 {
		return 0, errors.NewValidationErrorWithValue("time", value, "minute must be between 00 and 59", "", errors.ErrInvalidTime)
	}
	return hour, nil
}

// Duration validates a task duration in minutes.
func Duration(minutes int) error {
	if minutes <= 0 {
		return errors.NewValidationErrorWithValue("duration", strconv.Itoa(minutes),
			"must be a positive number of minutes", "", errors.ErrInvalidDuration)
	}
	return nil
}

// TaskInput validates the writable fields of a task. The first failure wins.
func TaskInput(in model.TaskInput) error {
	if err := TaskType(in.TaskType); err != nil {
		return err
	}
	if err := Description(in.Description); err != nil {
		return err
	}
	if err := Date("date", in.Date); err != nil {
		return err
	}
	if _, err := Clock(in.Time); err != nil {
		return err
	}
	return Duration(in.Duration)
}

// DateRange validates optional inclusive date bounds: each present bound must be
// a valid date.
func DateRange(start, end *string) error {
	if start != nil {
		if err := Date("start_date", *start); err != nil {
			return err
		}
	}
	if end != nil {
		if err := Date("end_date", *end); err != nil {
			return err
		}
	}
	return nil
}

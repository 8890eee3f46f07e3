package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/choreboard/internal/errors"
)

// TimeParseError represents a parsing error with example inputs.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	sentinel   error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap returns the matching validation sentinel.
func (e *TimeParseError) Unwrap() error {
	return e.sentinel
}

// FormatWithExamples returns the error message with example suggestions.
func (e *TimeParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// ToValidationError converts the error for consistent handling by callers.
func (e *TimeParseError) ToValidationError() *errors.ValidationError {
	suggestion := e.Suggestion
	if suggestion == "" && len(e.Examples) > 0 {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}
	return errors.NewValidationErrorWithValue(e.Field, e.Input, e.Message, suggestion, e.sentinel)
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"2024-03-01",
	"today",
	"yesterday",
	"3 days ago",
	"next friday",
}

// ClockExamples provides example time-of-day formats.
var ClockExamples = []string{
	"09:00",
	"9am",
	"5:30pm",
	"noon",
}

// DurationExamples provides example duration formats.
var DurationExamples = []string{
	"30",
	"45m",
	"1h30m",
	"1.5h",
	"2 hours",
}

// PeriodExamples provides example period formats.
var PeriodExamples = []string{
	"this week",
	"last month",
	"this year",
	"2024-03-01..2024-03-31",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or words like 'today' or '2 days ago'.",
		sentinel:   errors.ErrInvalidDate,
	}
}

// NewClockError creates a time-of-day parse error with standard examples.
func NewClockError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "time",
		Message:    "could not parse time of day",
		Examples:   ClockExamples,
		Suggestion: "Use 24-hour HH:MM or 12-hour times like '9am'.",
		sentinel:   errors.ErrInvalidTime,
	}
}

// NewDurationError creates a duration parse error with standard examples.
func NewDurationError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "duration",
		Message:    "could not parse duration",
		Examples:   DurationExamples,
		Suggestion: "Durations are minutes, or hours (h) and minutes (m).",
		sentinel:   errors.ErrInvalidDuration,
	}
}

// NewPeriodError creates a period parse error with standard examples.
func NewPeriodError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "period",
		Message:    "could not parse period",
		Examples:   PeriodExamples,
		Suggestion: "Use period names like 'this week' or 'last month', or START..END.",
		sentinel:   errors.ErrInvalidDate,
	}
}

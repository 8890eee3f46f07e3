package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrTaskNotFound:    "Use 'choreboard task list' to see existing tasks.",
	ErrUserNotFound:    "Use 'choreboard user list' to see household members.",
	ErrUnknownUser:     "Add the member first with 'choreboard user add <name>'.",
	ErrInvalidDate:     "Use YYYY-MM-DD, or a phrase like 'today', 'yesterday' or 'next friday'.",
	ErrInvalidTime:     "Use 24-hour HH:MM, for example 07:30 or 18:00.",
	ErrInvalidDuration: "Durations are whole minutes greater than zero, for example 30.",
	ErrEmptyName:       "Provide a non-empty name.",
	ErrEmptyTaskType:   "Pick a task type such as 'Fill dishwasher' (see 'choreboard types').",
	ErrUnknownDriver:   "Supported stores are badger, sqlite and postgres.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ve, ok := AsValidation(err); ok && ve.Suggestion != "" {
		return ve.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// FormatError formats an error with its suggestion, if any.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

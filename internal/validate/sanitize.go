package validate

import (
	"strings"
	"unicode"

	"github.com/manav03panchal/choreboard/internal/model"
)

// SanitizeName trims a user name or task type and removes control characters.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SanitizeDescription cleans a task description for safe storage.
func SanitizeDescription(desc string) string {
	desc = strings.TrimSpace(desc)

	// Remove null bytes (common injection attempt)
	desc = strings.ReplaceAll(desc, "\x00", "")

	// Normalize line endings
	desc = strings.ReplaceAll(desc, "\r\n", "\n")
	desc = strings.ReplaceAll(desc, "\r", "\n")

	return desc
}

// SanitizeTaskInput returns a copy of in with its text fields cleaned.
func SanitizeTaskInput(in model.TaskInput) model.TaskInput {
	in.TaskType = SanitizeName(in.TaskType)
	in.Description = SanitizeDescription(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	return in
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern matches expressions like "45", "30m", "2h", "1h30m",
// "1.5 hours" or "1 hour 30 minutes".
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+)\s*(m|min|mins|minute|minutes))?$`)

// ParseDuration parses a duration into whole minutes. A bare number is
// minutes. Results must be at least one minute.
func ParseDuration(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, NewDurationError(input)
	}

	// Standard Go duration format first (e.g., "1h30m0s")
	if d, err := time.ParseDuration(input); err == nil {
		return wholeMinutes(input, d.Minutes())
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return 0, NewDurationError(input)
	}

	value, _ := strconv.ParseFloat(matches[1], 64)
	total := value * unitMinutes(matches[2])
	if matches[3] != "" {
		extra, _ := strconv.ParseFloat(matches[3], 64)
		total += extra
	}
	return wholeMinutes(input, total)
}

func unitMinutes(unit string) float64 {
	switch strings.ToLower(unit) {
	case "h", "hr", "hrs", "hour", "hours":
		return 60
	default:
		return 1
	}
}

func wholeMinutes(input string, minutes float64) (int, error) {
	n := int(math.Round(minutes))
	if n <= 0 {
		return 0, NewDurationError(input)
	}
	return n, nil
}

// Package parser turns human date, time, duration and period expressions
// into the canonical task field formats.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/choreboard/internal/model"
)

// Parser resolves relative expressions against a clock.
type Parser struct {
	now func() time.Time
}

// New returns a parser whose relative expressions are resolved against now.
// A nil now uses time.Now.
func New(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{now: now}
}

// Now returns the parser's current time.
func (p *Parser) Now() time.Time {
	return p.now()
}

// Today returns the current date as YYYY-MM-DD.
func (p *Parser) Today() string {
	return p.now().Format(model.DateLayout)
}

var (
	isoDate     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clock24     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clockMeridi = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
)

// ParseDate resolves a date expression to YYYY-MM-DD. Empty means today.
// ISO dates are taken as is; anything else goes through go-dateparser.
func (p *Parser) ParseDate(input string) (string, error) {
	input = strings.TrimSpace(input)
	now := p.now()

	switch strings.ToLower(input) {
	case "", "today":
		return now.Format(model.DateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(model.DateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(model.DateLayout), nil
	}

	if isoDate.MatchString(input) {
		if _, err := time.Parse(model.DateLayout, input); err != nil {
			return "", NewDateError(input)
		}
		return input, nil
	}

	result, err := dateparser.Parse(p.config(now), input)
	if err != nil || result.Time.IsZero() {
		return "", NewDateError(input)
	}
	return result.Time.Format(model.DateLayout), nil
}

// ParseClock resolves a time of day to HH:MM. It accepts 24-hour times
// ("9:05", "21:30"), 12-hour times ("9am", "5:30pm"), "noon", "midnight",
// "now", and falls back to go-dateparser.
func (p *Parser) ParseClock(input string) (string, error) {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)

	switch lower {
	case "", "now":
		return p.now().Format(model.ClockLayout), nil
	case "noon", "midday":
		return "12:00", nil
	case "midnight":
		return "00:00", nil
	}

	if m := clock24.FindStringSubmatch(input); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h > 23 || min > 59 {
			return "", NewClockError(input)
		}
		return formatClock(h, min), nil
	}

	if m := clockMeridi.FindStringSubmatch(input); m != nil {
		h, _ := strconv.Atoi(m[1])
		min := 0
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		if h < 1 || h > 12 || min > 59 {
			return "", NewClockError(input)
		}
		h %= 12
		if strings.ToLower(m[3]) == "pm" {
			h += 12
		}
		return formatClock(h, min), nil
	}

	result, err := dateparser.Parse(p.config(p.now()), input)
	if err != nil || result.Time.IsZero() {
		return "", NewClockError(input)
	}
	return result.Time.Format(model.ClockLayout), nil
}

func (p *Parser) config(now time.Time) *dateparser.Configuration {
	return &dateparser.Configuration{
		CurrentTime:     now,
		DefaultTimezone: now.Location(),
	}
}

func formatClock(h, m int) string {
	return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC).Format(model.ClockLayout)
}

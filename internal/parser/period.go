package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/manav03panchal/choreboard/internal/model"
)

// Period is an inclusive range of dates.
type Period struct {
	Start string
	End   string
}

var (
	// periodRegex matches period expressions like "this week", "last month".
	periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(week|month|year)$`)
	// rangeRegex matches explicit ranges like "2024-03-01..2024-03-31".
	rangeRegex = regexp.MustCompile(`^(\S+)\s*(?:\.\.|\s+to\s+)\s*(\S+)$`)
)

// ParsePeriod resolves a period expression to an inclusive date range.
// Empty means month to date. Weeks start on Sunday.
//
// Supported: "", "today", "yesterday", "this|last week|month|year",
// "month to date", "START..END" and any single date ParseDate accepts.
func (p *Parser) ParsePeriod(input string) (Period, error) {
	input = strings.TrimSpace(input)
	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch strings.ToLower(input) {
	case "", "month to date", "mtd":
		return period(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today), nil
	case "today":
		return period(today, today), nil
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return period(y, y), nil
	}

	if m := periodRegex.FindStringSubmatch(input); m != nil {
		last := strings.EqualFold(m[1], "last") || strings.EqualFold(m[1], "previous")
		return namedPeriod(today, strings.ToLower(m[2]), last), nil
	}

	if m := rangeRegex.FindStringSubmatch(input); m != nil {
		start, err := p.ParseDate(m[1])
		if err != nil {
			return Period{}, NewPeriodError(input)
		}
		end, err := p.ParseDate(m[2])
		if err != nil {
			return Period{}, NewPeriodError(input)
		}
		if end < start {
			return Period{}, NewPeriodError(input)
		}
		return Period{Start: start, End: end}, nil
	}

	date, err := p.ParseDate(input)
	if err != nil {
		return Period{}, NewPeriodError(input)
	}
	return Period{Start: date, End: date}, nil
}

func namedPeriod(today time.Time, unit string, last bool) Period {
	var start, end time.Time
	switch unit {
	case "week":
		start = today.AddDate(0, 0, -int(today.Weekday()))
		if last {
			start = start.AddDate(0, 0, -7)
		}
		end = start.AddDate(0, 0, 6)
	case "month":
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		if last {
			start = start.AddDate(0, -1, 0)
		}
		end = start.AddDate(0, 1, -1)
	default: // year
		start = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		if last {
			start = start.AddDate(-1, 0, 0)
		}
		end = start.AddDate(1, 0, -1)
	}
	return period(start, end)
}

func period(start, end time.Time) Period {
	return Period{Start: start.Format(model.DateLayout), End: end.Format(model.DateLayout)}
}

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/parser"
	"github.com/manav03panchal/choreboard/internal/query"
	"github.com/manav03panchal/choreboard/internal/storage"
)

// Filter flags shared by the listing commands.
var (
	flagFilterUser string
	flagFilterType string
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagFilterUser, "user", "u", "", "Only tasks assigned to this member (name or id)")
	cmd.Flags().StringVarP(&flagFilterType, "type", "t", "", "Only tasks of this type")
	_ = cmd.RegisterFlagCompletionFunc("user", completeUsers)
	_ = cmd.RegisterFlagCompletionFunc("type", completeTaskTypes)
}

// openStore returns the store of the runtime context.
func openStore(cmd *cobra.Command) (storage.Store, error) {
	return ctx.Store(cmd.Context())
}

// filterCriteria builds criteria from the shared filter flags.
func filterCriteria(c context.Context, store storage.Store) (query.Criteria, error) {
	var crit query.Criteria
	if flagFilterUser != "" {
		id, err := resolveUser(c, store, flagFilterUser)
		if err != nil {
			return query.Criteria{}, err
		}
		crit = crit.WithUser(id)
	}
	if t := strings.TrimSpace(flagFilterType); t != "" {
		crit = crit.WithTaskType(t)
	}
	ctx.Debugf("filter: %s", crit.Values().Encode())
	return crit, nil
}

// resolveUser accepts a user id or a name, matched case-insensitively.
func resolveUser(c context.Context, store storage.Store, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, nil
	}

	users, err := store.ListUsers(c)
	if err != nil {
		return 0, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Name, ref) {
			return u.ID, nil
		}
	}
	return 0, errors.NewValidationErrorWithValue("user", ref, "no such household member", "", errors.ErrUserNotFound)
}

// parseID parses a task id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, errors.NewValidationErrorWithValue("id", arg, "must be an integer", "", errors.ErrInvalidID)
	}
	return id, nil
}

// userError converts parser errors into validation errors.
func userError(err error) error {
	var tpe *parser.TimeParseError
	if errors.As(err, &tpe) {
		return tpe.ToValidationError()
	}
	return err
}

func parseDate(input string) (string, error) {
	date, err := ctx.Parser.ParseDate(input)
	return date, userError(err)
}

func parseClock(input string) (string, error) {
	clock, err := ctx.Parser.ParseClock(input)
	return clock, userError(err)
}

func parseDuration(input string) (int, error) {
	minutes, err := parser.ParseDuration(input)
	return minutes, userError(err)
}

func parsePeriod(args []string) (parser.Period, error) {
	p, err := ctx.Parser.ParsePeriod(strings.Join(args, " "))
	return p, userError(err)
}

// anchorDate parses a date argument into a time at midnight UTC.
func anchorDate(args []string) (time.Time, error) {
	date, err := parseDate(strings.Join(args, " "))
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", date, err)
	}
	return t, nil
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/calendar"
	"github.com/manav03panchal/choreboard/internal/dayview"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/query"
)

// dayCmd shows the hourly schedule of a day.
var dayCmd = &cobra.Command{
	Use:     "day [DATE]",
	Aliases: []string{"today", "schedule"},
	Short:   "Show a day's chores by hour",
	Long: `Show the chores of one day grouped into hourly slots.

Examples:
  choreboard day
  choreboard day yesterday
  choreboard day 2024-03-01 --user Alice`,
	RunE: runDay,
}

// analysisCmd summarizes a period.
var analysisCmd = &cobra.Command{
	Use:     "analysis [PERIOD]",
	Aliases: []string{"stats", "report"},
	Short:   "Summarize chores over a period",
	Long: `Summarize chores over a period: totals, counts per type and a daily trend.
The period defaults to the first of this month through today.

Examples:
  choreboard analysis
  choreboard analysis last week
  choreboard analysis 2024-03-01..2024-03-31 --type "Cook meal"`,
	ValidArgsFunction: completePeriods,
	RunE:              runAnalysis,
}

var (
	calendarFlagWeek  bool
	calendarFlagShift int
)

// calendarCmd shows a month or week grid.
var calendarCmd = &cobra.Command{
	Use:     "calendar [DATE]",
	Aliases: []string{"cal"},
	Short:   "Show chore counts on a month or week grid",
	Long: `Show how many chores fall on each day of the month (or week) around DATE.

Examples:
  choreboard calendar
  choreboard calendar --week
  choreboard calendar 2024-02-14 --shift -1`,
	RunE: runCalendar,
}

// typesCmd lists task types.
var typesCmd = &cobra.Command{
	Use:     "types",
	Aliases: []string{"task-types"},
	Short:   "List task types",
	Long:    "List the configured default task types followed by any other type in use.",
	Args:    cobra.NoArgs,
	RunE:    runTypes,
}

func init() {
	addFilterFlags(dayCmd)
	addFilterFlags(analysisCmd)
	addFilterFlags(calendarCmd)
	addFilterFlags(rootCmd)

	calendarCmd.Flags().BoolVarP(&calendarFlagWeek, "week", "w", false, "Show the week instead of the month")
	calendarCmd.Flags().IntVar(&calendarFlagShift, "shift", 0, "Move the grid by N months (or weeks)")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(typesCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	date, err := parseDate(strings.Join(args, " "))
	if err != nil {
		return err
	}
	crit, err := filterCriteria(cmd.Context(), store)
	if err != nil {
		return err
	}

	tasks, err := store.ListTasks(cmd.Context(), crit.ForDate(date))
	if err != nil {
		return err
	}
	view, err := dayview.Bucketize(date, tasks)
	if err != nil {
		return err
	}
	users, err := store.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	return ctx.Renderer().DayView(view, users)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	p, err := parsePeriod(args)
	if err != nil {
		return err
	}
	crit, err := filterCriteria(cmd.Context(), store)
	if err != nil {
		return err
	}

	tasks, err := store.ListTasks(cmd.Context(), crit.WithRange(p.Start, p.End))
	if err != nil {
		return err
	}
	return ctx.Renderer().Report(p.Start, p.End, analysis.Analyze(tasks))
}

func runCalendar(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	anchor, err := anchorDate(args)
	if err != nil {
		return err
	}
	view := calendar.ViewMonth
	if calendarFlagWeek {
		view = calendar.ViewWeek
	}
	if calendarFlagShift != 0 {
		anchor = calendar.Shift(view, anchor, calendarFlagShift)
	}

	crit, err := filterCriteria(cmd.Context(), store)
	if err != nil {
		return err
	}
	start, end := calendar.Range(view, anchor)
	crit = crit.WithRange(start.Format(model.DateLayout), end.Format(model.DateLayout))

	tasks, err := store.ListTasks(cmd.Context(), crit)
	if err != nil {
		return err
	}
	return ctx.Renderer().Calendar(calendar.Build(view, anchor, tasks))
}

func runTypes(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	tasks, err := store.ListTasks(cmd.Context(), query.Criteria{})
	if err != nil {
		return err
	}
	return ctx.Renderer().TaskTypes(analysis.TaskTypes(tasks, ctx.Config.Tasks.DefaultTypes))
}

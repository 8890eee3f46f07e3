package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/errors"
	"github.com/manav03panchal/choreboard/internal/model"
	"github.com/manav03panchal/choreboard/internal/storage"
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "chore", "chores"},
	Short:   "Manage chores",
	Long: `Add, list, show, edit and delete chores.

Dates accept YYYY-MM-DD or phrases like 'today', 'yesterday' and 'next friday'.
Times accept HH:MM, '6pm' or 'noon'. Durations accept minutes, '45m' or '1h30m'.

Examples:
  choreboard task add "Fill dishwasher" --user Alice
  choreboard task add "Cook meal" --date tomorrow --time 6pm --duration 1h
  choreboard task list this week --user Bob
  choreboard task show 3
  choreboard task edit 3 --time 19:00 --duration 40
  choreboard task delete 3`,
	RunE: runTaskList,
}

// Task subcommand flags.
var (
	taskFlagUser        string
	taskFlagDate        string
	taskFlagTime        string
	taskFlagDuration    string
	taskFlagDescription string
	taskEditFlagType    string
)

// taskAddCmd adds a task.
var taskAddCmd = &cobra.Command{
	Use:               "add TYPE",
	Short:             "Add a chore",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeTaskTypes,
	RunE:              runTaskAdd,
}

// taskListCmd lists tasks.
var taskListCmd = &cobra.Command{
	Use:               "list [PERIOD]",
	Aliases:           []string{"ls"},
	Short:             "List chores, optionally within a period",
	ValidArgsFunction: completePeriods,
	RunE:              runTaskList,
}

// taskShowCmd shows one task.
var taskShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a chore",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

// taskEditCmd edits a task.
var taskEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a chore",
	Long: `Edit a chore. Only the given flags change. The assigned member is fixed
when the chore is added and cannot be edited.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

// taskDeleteCmd deletes a task.
var taskDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a chore",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

func init() {
	// Add flags
	taskAddCmd.Flags().StringVarP(&taskFlagUser, "user", "u", "", "Assign to a member (name or id)")
	taskAddCmd.Flags().StringVarP(&taskFlagDate, "date", "d", "", "Date (default today)")
	taskAddCmd.Flags().StringVar(&taskFlagTime, "time", "", "Time of day (default now)")
	taskAddCmd.Flags().StringVar(&taskFlagDuration, "duration", "", "Duration (default from config)")
	taskAddCmd.Flags().StringVarP(&taskFlagDescription, "description", "m", "", "Description")
	_ = taskAddCmd.RegisterFlagCompletionFunc("user", completeUsers)

	// Edit flags
	taskEditCmd.Flags().StringVarP(&taskEditFlagType, "type", "t", "", "Update task type")
	taskEditCmd.Flags().StringVarP(&taskFlagDate, "date", "d", "", "Update date")
	taskEditCmd.Flags().StringVar(&taskFlagTime, "time", "", "Update time of day")
	taskEditCmd.Flags().StringVar(&taskFlagDuration, "duration", "", "Update duration")
	taskEditCmd.Flags().StringVarP(&taskFlagDescription, "description", "m", "", "Update description")
	_ = taskEditCmd.RegisterFlagCompletionFunc("type", completeTaskTypes)

	addFilterFlags(taskListCmd)

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	in := model.TaskInput{
		TaskType:    strings.Join(args, " "),
		Description: taskFlagDescription,
		Duration:    ctx.Config.Tasks.DefaultDuration,
	}
	if taskFlagUser != "" {
		id, err := resolveUser(cmd.Context(), store, taskFlagUser)
		if err != nil {
			return err
		}
		in.UserID = model.ID(id)
	}
	if in.Date, err = parseDate(taskFlagDate); err != nil {
		return err
	}
	if in.Time, err = parseClock(taskFlagTime); err != nil {
		return err
	}
	if taskFlagDuration != "" {
		if in.Duration, err = parseDuration(taskFlagDuration); err != nil {
			return err
		}
	}

	task, err := store.AddTask(cmd.Context(), in)
	if err != nil {
		return err
	}
	ctx.Debugf("added task %d", task.ID)
	return renderTask(cmd, store, task)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	crit, err := filterCriteria(cmd.Context(), store)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		p, err := parsePeriod(args)
		if err != nil {
			return err
		}
		crit = crit.WithRange(p.Start, p.End)
	}

	tasks, err := store.ListTasks(cmd.Context(), crit)
	if err != nil {
		return err
	}
	users, err := store.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	return ctx.Renderer().Tasks(tasks, users)
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	task, err := store.GetTask(cmd.Context(), id)
	if err != nil {
		return err
	}
	return renderTask(cmd, store, task)
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	task, err := store.GetTask(cmd.Context(), id)
	if err != nil {
		return err
	}

	in := task.Input()
	flags := cmd.Flags()
	if flags.Changed("type") {
		in.TaskType = taskEditFlagType
	}
	if flags.Changed("description") {
		in.Description = taskFlagDescription
	}
	if flags.Changed("date") {
		if in.Date, err = parseDate(taskFlagDate); err != nil {
			return err
		}
	}
	if flags.Changed("time") {
		if in.Time, err = parseClock(taskFlagTime); err != nil {
			return err
		}
	}
	if flags.Changed("duration") {
		if in.Duration, err = parseDuration(taskFlagDuration); err != nil {
			return err
		}
	}

	n, err := store.UpdateTask(cmd.Context(), id, in)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("task", id)
	}

	task, err = store.GetTask(cmd.Context(), id)
	if err != nil {
		return err
	}
	return renderTask(cmd, store, task)
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	n, err := store.DeleteTask(cmd.Context(), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("task", id)
	}
	return ctx.Renderer().Message("Task deleted successfully")
}

func renderTask(cmd *cobra.Command, store storage.Store, task *model.Task) error {
	users, err := store.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	return ctx.Renderer().Task(task, users)
}

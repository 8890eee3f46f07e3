package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/analysis"
	"github.com/manav03panchal/choreboard/internal/query"
)

// completeUsers returns a completion function for member names.
func completeUsers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := openStore(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	users, err := store.ListUsers(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, u := range users {
		if hasPrefixFold(u.Name, toComplete) {
			completions = append(completions, u.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeTaskTypes returns the default and stored task types.
func completeTaskTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	types := ctx.Config.Tasks.DefaultTypes
	if store, err := openStore(cmd); err == nil {
		if tasks, err := store.ListTasks(cmd.Context(), query.Criteria{}); err == nil {
			types = analysis.TaskTypes(tasks, types)
		}
	}

	var completions []string
	for _, t := range types {
		if hasPrefixFold(t, toComplete) {
			completions = append(completions, t)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completePeriods suggests period expressions.
func completePeriods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	periods := []string{
		"today\ttoday's chores",
		"yesterday\tyesterday's chores",
		"this week\tsince Sunday",
		"last week\tthe previous week",
		"this month\tthe whole month",
		"last month\tthe previous month",
		"this year\tthe whole year",
		"month to date\tfirst of the month through today",
	}

	var filtered []string
	for _, p := range periods {
		if hasPrefixFold(strings.Split(p, "\t")[0], toComplete) {
			filtered = append(filtered, p)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

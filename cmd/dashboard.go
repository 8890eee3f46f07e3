package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/choreboard/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard shows:
  - The selected day's chores by hour
  - A summary and daily trend for the selected month

Keyboard Controls:
  ←/h - Previous day
  →/l - Next day
  t   - Jump to today
  r   - Refresh data
  q   - Quit dashboard

Examples:
  choreboard dashboard
  choreboard dash`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	return tui.Run(tui.DashboardConfig{
		Store:   store,
		Context: cmd.Context(),
		Now:     ctx.Parser.Now,
	})
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// userCmd represents the user command.
var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users", "member", "members"},
	Short:   "Manage household members",
	Long: `Add household members or list them. Members are never renamed or removed.

Examples:
  choreboard user add Alice
  choreboard user list`,
	RunE: runUserList,
}

// userAddCmd adds a member.
var userAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a household member",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUserAdd,
}

// userListCmd lists members.
var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List household members",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

func init() {
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	user, err := store.AddUser(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	return ctx.Renderer().User(user)
}

func runUserList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	users, err := store.ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	return ctx.Renderer().Users(users)
}

package cmd

import (
	"context"
	"strings"

	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/money"
	"github.com/frahmantamala/household-expenses/internal/render"
	"github.com/frahmantamala/household-expenses/internal/user"
	"github.com/spf13/cobra"
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Manage savings goals",
}

var savingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every savings goal and its progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			_, err := r.app.LoadSavings(ctx)
			return err
		})
	},
}

var savingsAddCmd = &cobra.Command{
	Use:   "add <name> <target>",
	Short: "Create a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := money.Parse(args[1])
		if err != nil {
			return err
		}
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			return r.app.AddSavingsGoal(ctx, args[0], target)
		})
	},
}

var savingsContributeCmd = &cobra.Command{
	Use:   "contribute <id> <amount>",
	Short: "Add money to a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := money.Parse(args[1])
		if err != nil {
			return err
		}
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			return r.app.Contribute(ctx, id, amount)
		})
	},
}

var savingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a savings goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			return r.app.DeleteSavingsGoal(ctx, id)
		})
	},
}

var (
	newUserPassword string
	newUserRole     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer household accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dto := user.CreateUserDTO{
			Username: strings.TrimSpace(args[0]),
			Password: newUserPassword,
			Role:     newUserRole,
		}
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			_, err := r.app.AdminAddUser(ctx, dto)
			return err
		})
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			_, err := r.app.AdminListUsers(ctx)
			return err
		})
	},
}

func init() {
	usersAddCmd.Flags().StringVar(&newUserPassword, "password", "", "initial password")
	usersAddCmd.Flags().StringVar(&newUserRole, "role", string(coreUser.RoleUser), "viewer, user, editor or admin")

	savingsCmd.AddCommand(savingsListCmd, savingsAddCmd, savingsContributeCmd, savingsDeleteCmd)
	usersCmd.AddCommand(usersAddCmd, usersListCmd)
	rootCmd.AddCommand(savingsCmd, usersCmd)
}

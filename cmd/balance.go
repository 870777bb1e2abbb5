package cmd

import (
	"context"

	"github.com/frahmantamala/household-expenses/internal/money"
	"github.com/frahmantamala/household-expenses/internal/render"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show or set the starting balance of a month",
}

var balanceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show starting balance, spending and what remains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, render.SectionSummary|render.SectionBalance|render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			return r.app.Refresh(ctx)
		})
	},
}

var balanceSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Save the starting balance of a month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := money.Parse(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, render.SectionBalance|render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			return r.app.SaveStartingBalance(ctx, amount)
		})
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Compare a month's spending with the month before",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, render.SectionDashboard|render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			return r.app.Refresh(ctx)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{balanceShowCmd, balanceSetCmd, dashboardCmd} {
		addMonthFlag(c)
	}
	balanceCmd.AddCommand(balanceShowCmd, balanceSetCmd)
	rootCmd.AddCommand(balanceCmd, dashboardCmd)
}

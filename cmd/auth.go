package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/household-expenses/internal/render"
	"github.com/spf13/cobra"
)

const passwordEnv = "HOUSEHOLD_PASSWORD"

var (
	loginPassword string
	loginRemember bool
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and keep the session for later commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv(passwordEnv)
		}
		if password == "" {
			return fmt.Errorf("password required: pass --password or set %s", passwordEnv)
		}

		r, err := newClientRuntime(cmd, render.SectionSummary|render.SectionBalance|render.SectionSync)
		if err != nil {
			return err
		}
		defer r.save()
		return reported(r.app.Login(context.Background(), args[0], password, loginRemember))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session on the server and forget it locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newClientRuntime(cmd, render.SectionSync)
		if err != nil {
			return err
		}
		ctx := context.Background()
		if _, err := r.app.Gate().Check(ctx); err != nil {
			return err
		}
		err = r.app.Logout(ctx)
		r.save()
		if err := os.Remove(r.cfg.Client.SessionFile); err != nil && !os.IsNotExist(err) {
			return err
		}
		return reported(err)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the saved session belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			u, _ := r.app.User()
			c := r.app.Gate().Controls()
			fmt.Fprintf(r.out, "%s (%s)\n", u.Username, u.Role)
			fmt.Fprintf(r.out, "add expenses: %t  delete: %t  edit balance: %t  savings: %t  admin: %t\n",
				c.AddEnabled, c.DeleteVisible, c.BalanceEditable, c.SavingsNav, c.AdminNav)
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (or set "+passwordEnv+")")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", false, "keep the session for the long remember-me period")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

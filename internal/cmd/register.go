package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/auth"
	"github.com/teamtask/teamtask/internal/model"
)

var (
	registerName  string
	registerEmail string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account in the team's user sheet",
	Long: `Register creates your account. The very first account registered
against a fresh sheet becomes the active admin; every later account
starts pending and needs an admin's approval before it can log in.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email address")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	name, email := registerName, registerEmail
	if name == "" {
		if name, err = promptLine(out, "Name: "); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = promptLine(out, "Email: "); err != nil {
			return err
		}
	}
	secret, err := promptSecret(out, "Password: ")
	if err != nil {
		return err
	}

	gate := auth.NewGate(app.client, app.log)
	user, err := gate.Register(cmd.Context(), name, email, secret)
	if err != nil {
		return err
	}

	if user.IsAdmin() {
		if err := app.sessions.Save(user); err != nil {
			return err
		}
		fmt.Fprintf(out, "Welcome, %s. You are the first user and now the team admin; you are logged in.\n", user.Name)
		return nil
	}

	if user.Status == model.UserPending {
		fmt.Fprintf(out, "Registered %s. Your account is pending; ask your admin to approve it, then run \"teamtask login\".\n", user.Email)
	}
	return nil
}

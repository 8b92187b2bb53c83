package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/auth"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	email := loginEmail
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
	user, err := gate.Login(cmd.Context(), email, secret)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthorized) {
			return fmt.Errorf("your account has not been approved yet; ask your admin")
		}
		return err
	}
	if user == nil {
		return fmt.Errorf("no account matches that email and password")
	}

	if err := app.sessions.Save(user); err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged in as %s <%s>.\n", user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.sessions.Load()
	if err != nil {
		return err
	}
	role := "member"
	if user.IsAdmin() {
		role = "admin"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, role)
	return nil
}

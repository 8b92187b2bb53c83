package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/auth"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage pending registrations (admin only)",
}

var adminPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List registrations awaiting a decision",
	RunE:  runAdminPending,
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <user-id>",
	Short: "Approve a pending registration",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminApprove,
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <user-id>",
	Short: "Reject a pending registration",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminReject,
}

func init() {
	adminCmd.AddCommand(adminPendingCmd, adminApproveCmd, adminRejectCmd)
	rootCmd.AddCommand(adminCmd)
}

func newAdmin(app *app) (*auth.Admin, error) {
	user, err := app.sessions.Load()
	if err != nil {
		return nil, err
	}
	return auth.NewAdmin(app.client, user, app.log), nil
}

func runAdminPending(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	admin, err := newAdmin(app)
	if err != nil {
		return err
	}
	pending, err := admin.Pending(cmd.Context())
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pending registrations.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, u := range pending {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	return w.Flush()
}

func runAdminApprove(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	admin, err := newAdmin(app)
	if err != nil {
		return err
	}
	if err := admin.Approve(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Approved %s.\n", args[0])
	return nil
}

func runAdminReject(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	admin, err := newAdmin(app)
	if err != nil {
		return err
	}
	if err := admin.Reject(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s.\n", args[0])
	return nil
}

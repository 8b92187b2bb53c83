package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/config"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored endpoint and log out",
	Long: `Reset clears the stored endpoint URL and the local session, returning
the client to its pre-setup state. Nothing on the spreadsheet side is
touched: your account and the team's tasks stay where they are.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !resetForce {
		answer, err := promptLine(cmd.OutOrStdout(), "Forget the endpoint and log out? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := app.sessions.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if err := config.SetEndpoint(""); err != nil {
		return fmt.Errorf("clearing endpoint: %w", err)
	}

	app.log.Info("client reset")
	fmt.Fprintln(cmd.OutOrStdout(), "Endpoint and session cleared. Run \"teamtask setup\" to start over.")
	return nil
}

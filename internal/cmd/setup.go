package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/config"
	"github.com/teamtask/teamtask/internal/store"
)

var setupSkipProbe bool

var setupCmd = &cobra.Command{
	Use:   "setup <endpoint-url>",
	Short: "Point the client at your team's spreadsheet endpoint",
	Long: `Setup validates and stores the web-app endpoint URL the whole team
shares. The URL is probed with a harmless read before being saved, so a
typo or a misdeployed endpoint is caught here rather than at first use.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupSkipProbe, "skip-probe", false, "save the URL without contacting the endpoint")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	url := args[0]
	if err := config.ValidateEndpointURL(url); err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !setupSkipProbe {
		client := store.New(url, store.WithLogger(app.log))
		if err := client.Probe(cmd.Context()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), `Could not reach the endpoint: %v

Check:
  1. Is the deployment's access set to "Anyone"? (most common cause)
  2. Does the URL end in /exec?
  3. Was the URL copied from the latest deployment?
`, err)
			return fmt.Errorf("endpoint probe failed")
		}
	}

	if err := config.SetEndpoint(url); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Endpoint saved to %s\n", config.ConfigFile())
	fmt.Fprintln(cmd.OutOrStdout(), `Next: "teamtask register" to create your account.`)
	return nil
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teamtask/teamtask/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "teamtask",
	Short: "Spreadsheet-backed team task tracker",
	Long: `Teamtask is a small team task tracker that uses a shared spreadsheet
as its only backend. Run "teamtask setup" once to point it at your
team's endpoint, register an account, and use "teamtask run" for the
interactive interface or the subcommands for scripting.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/teamtask/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/teamtask")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TEAMTASK")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TEAMTASK_ENDPOINT_URL for endpoint.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

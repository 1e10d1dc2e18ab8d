package cli

import (
	"github.com/spf13/cobra"

	"github.com/aryan-gupta7/track-it-v1/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "List the recognized environment variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Usage(cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		redacted := *cfg
		if redacted.Database.AuthToken != "" {
			redacted.Database.AuthToken = "****"
		}
		if redacted.Elastic.Password != "" {
			redacted.Elastic.Password = "****"
		}
		if redacted.Elastic.APIKey != "" {
			redacted.Elastic.APIKey = "****"
		}
		return writeJSON(cmd.OutOrStdout(), redacted)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

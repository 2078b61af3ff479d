// internal/cli/show_config.go
package timetool

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/timetool/internal/appconfig"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly. With --debug the full struct is dumped as well.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := configOrDefault()
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg, cfg.Debug)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}

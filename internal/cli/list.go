// internal/cli/list.go
package timetool

import "github.com/spf13/cobra"

// listCmd groups subcommands that list things.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
	Long:  `The 'list' command groups subcommands that list resources related to timetool.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

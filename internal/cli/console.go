// internal/cli/console.go
package timetool

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/timetool/internal/tui"
)

// startConsole is a function alias to tui.StartConsole for the interactive console.
var startConsole = tui.StartConsole

// consoleCmd represents the 'console' command.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start an interactive console for the time tools",
	Long:  `The 'console' command opens a terminal UI where tools are called by typing "<tool> key=value ..." or "<tool> {json}". Type "tools" to list the catalog, "clear" to empty the history, and press esc to quit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		cfg := configOrDefault()

		inv, release, err := openInvoker(cmd.Context(), cfg, remote)
		if err != nil {
			return err
		}
		defer release()

		return startConsole(cmd.Context(), cfg, inv)
	},
}

func init() {
	consoleCmd.Flags().Bool("remote", false, "run tools through the MCP server binary")
	rootCmd.AddCommand(consoleCmd)
}

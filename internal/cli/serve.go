// internal/cli/serve.go
package timetool

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mwiater/timetool/internal/appconfig"
	"github.com/mwiater/timetool/internal/logging"
	"github.com/mwiater/timetool/internal/mcpserver"
)

var (
	// serveStdin and serveStdout are the streams the server speaks on.
	serveStdin  io.Reader = os.Stdin
	serveStdout io.Writer = os.Stdout
)

// serveCmd runs the MCP server on stdio.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the time tools over MCP on stdin/stdout",
	Long:  `The 'serve' command speaks JSON-RPC 2.0 on stdin/stdout so an MCP host can launch timetool as a tool server. Logs go to stderr and the log file, never stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, configOrDefault(), serveStdin, serveStdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg *appconfig.Config, r io.Reader, w io.Writer) error {
	logging.LogEvent("MCP server starting: name=%s framing=%s", cfg.ServerDisplayName(), cfg.FramingMode())
	err := mcpserver.New(*cfg).Serve(ctx, r, w)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// configOrDefault returns the loaded config or an empty one.
func configOrDefault() *appconfig.Config {
	if cfg := GetConfig(); cfg != nil {
		return cfg
	}
	return &appconfig.Config{}
}

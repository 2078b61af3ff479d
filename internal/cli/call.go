// internal/cli/call.go
package timetool

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/timetool/internal/timetools"
	"github.com/mwiater/timetool/internal/tui"
)

// errToolFailed makes the process exit non-zero when a tool reports isError.
var errToolFailed = errors.New("tool call failed")

var (
	successfulResult = color.New(color.FgGreen).SprintFunc()
	failedResult     = color.New(color.FgRed).SprintFunc()
)

// callCmd implements 'call', which runs one tool and prints its result.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Call a time tool",
	Long: `The 'call' command runs one tool and prints its result. Arguments come from --args (a JSON object) and --arg key=value pairs, which override --args. With --remote the call goes through the MCP server binary.

Examples:
  timetool call get_time_utc
  timetool call parse_time --arg "time_rfc2822=Mon, 02 Jan 2006 15:04:05 +0000"
  timetool call time_offset --args '{"timestamp":1136214245,"offset":-3600}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		rawArgs, _ := cmd.Flags().GetString("args")
		pairs, _ := cmd.Flags().GetStringArray("arg")

		toolArgs, err := buildArguments(rawArgs, pairs)
		if err != nil {
			return err
		}

		cfg := configOrDefault()
		inv, release, err := openInvoker(cmd.Context(), cfg, remote)
		if err != nil {
			return err
		}
		defer release()

		result, err := inv.Call(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), result, cfg.JSONMode, cfg.Debug)
		if result.IsError {
			return errToolFailed
		}
		return nil
	},
}

func init() {
	callCmd.Flags().String("args", "", "tool arguments as a JSON object")
	callCmd.Flags().StringArray("arg", nil, "tool argument as key=value (repeatable)")
	callCmd.Flags().Bool("remote", false, "call through the MCP server binary")
	rootCmd.AddCommand(callCmd)
}

// buildArguments merges the --args object with --arg pairs.
func buildArguments(raw string, pairs []string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
		if args == nil {
			args = map[string]any{}
		}
	}
	extra, err := tui.ParseAssignments(pairs)
	if err != nil {
		return nil, fmt.Errorf("--arg: %w", err)
	}
	for k, v := range extra {
		args[k] = v
	}
	return args, nil
}

// printResult writes the result as JSON in json mode, or as a status line
// followed by the payload fields.
func printResult(out io.Writer, result timetools.CallResult, jsonMode, debug bool) {
	if jsonMode {
		data, err := json.Marshal(result)
		if err != nil {
			fmt.Fprintln(out, result.Text())
			return
		}
		fmt.Fprintln(out, string(data))
		return
	}

	if debug {
		coloring := pp.ColoringEnabled
		pp.ColoringEnabled = !color.NoColor
		pp.Fprintln(out, result)
		pp.ColoringEnabled = coloring
	}

	if result.IsError {
		fmt.Fprintf(out, "%s %s\n", failedResult("ERROR"), result.Text())
		return
	}

	var payload timetools.Payload
	if err := json.Unmarshal([]byte(result.Text()), &payload); err != nil {
		fmt.Fprintf(out, "%s %s\n", successfulResult("OK"), result.Text())
		return
	}
	fmt.Fprintf(out, "%s\n", successfulResult("OK"))
	fmt.Fprintf(out, "  utc_time:         %s\n", payload.UTCTime)
	fmt.Fprintf(out, "  utc_time_rfc2822: %s\n", payload.UTCTimeRFC2822)
}

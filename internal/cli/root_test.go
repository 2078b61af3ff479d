// internal/cli/root_test.go
package timetool

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/timetool/internal/logging"
)

func resetFlag(flags *pflag.FlagSet, name string) {
	flag := flags.Lookup(name)
	if flag == nil {
		return
	}
	if slice, ok := flag.Value.(pflag.SliceValue); ok {
		_ = slice.Replace(nil)
	} else {
		_ = flag.Value.Set(flag.DefValue)
	}
	flag.Changed = false
}

// resetFlags clears state left on the global command tree by earlier runs.
func resetFlags() {
	for _, name := range []string{"config", "debug", "jsonMode", "logFile", "framing", "serverName", "mcpBinary", "mcpInitTimeout"} {
		resetFlag(rootCmd.PersistentFlags(), name)
	}
	for _, c := range []*struct {
		flags *pflag.FlagSet
		names []string
	}{
		{describeCmd.Flags(), []string{"remote"}},
		{callCmd.Flags(), []string{"remote", "args", "arg"}},
		{consoleCmd.Flags(), []string{"remote"}},
	} {
		for _, name := range c.names {
			resetFlag(c.flags, name)
		}
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// executeRoot runs the command tree with a temporary config file and log
// file, returning combined stdout and stderr.
func executeRoot(t *testing.T, configJSON string, args ...string) (string, error) {
	t.Helper()
	configPath := writeTempConfig(t, configJSON)
	logPath := filepath.Join(t.TempDir(), "timetool.log")

	prevCfgFile := cfgFile
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		currentConfig = nil
		rootCmd.SetArgs([]string{})
		resetFlags()
	})
	t.Cleanup(func() { _ = logging.Close() })
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", configPath, "--logFile", logPath}, args...))
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"nonexistent"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"timetool\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func TestListCommands(t *testing.T) {
	out, err := executeRoot(t, "{}", "list", "commands")
	if err != nil {
		t.Fatalf("list commands error: %v", err)
	}
	for _, want := range []string{"Commands and Subcommands:", "  timetool", "    timetool serve", "    timetool call", "      timetool show config"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
	if strings.Contains(out, "completion") {
		t.Fatalf("completion command should be hidden, got %s", out)
	}
}

package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacquerai/heartbeat/internal/sample"
)

// executeCommand runs rootCmd with args, resetting flag state before and
// after so tests do not leak values into each other.
func executeCommand(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// withSource makes commands draw from a fixed sequence.
func withSource(t *testing.T, values ...uint8) {
	t.Helper()
	original := newSource
	newSource = func() sample.Source { return sample.Fixed(values...) }
	t.Cleanup(func() { newSource = original })
}

func TestGetVersion(t *testing.T) {
	version := getVersion()
	assert.Contains(t, version, "dev")
	assert.Contains(t, version, "unknown")
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, func() {
		initLogging()
	})
}

func TestInitConfig(t *testing.T) {
	require.NotPanics(t, func() {
		initConfig()
	})
}

func TestRootCommand(t *testing.T) {
	output, _, err := executeCommand(t, "--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "Heartbeat is a small demo workload")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "--interval")
}

func TestGlobalFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "string", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)
	assert.Equal(t, "disabled", flag.DefValue)

	flag = rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)

	flag = rootCmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())
}

func TestLoopFlags(t *testing.T) {
	flag := rootCmd.Flags().Lookup("interval")
	require.NotNil(t, flag)
	assert.Equal(t, "5s", flag.DefValue)

	flag = rootCmd.Flags().Lookup("count")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)

	flag = rootCmd.Flags().Lookup("metrics-addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)

	flag = rootCmd.Flags().Lookup("progress")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestCommandAvailability(t *testing.T) {
	commands := []string{"once", "record", "schema", "version"}

	for _, cmdName := range commands {
		cmd, _, err := rootCmd.Find([]string{cmdName})
		assert.NoError(t, err, "Command %s should be available", cmdName)
		assert.Equal(t, cmdName, cmd.Name(), "Command name should match")
	}
}

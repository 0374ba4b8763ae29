package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lacquerai/heartbeat/internal/testhelper"
)

const wantRecordLine = `Serialized Person: {"name":"John Doe","age":30,"phones":["+44 1234567","+44 2345678"]}`

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRun_Count(t *testing.T) {
	withSource(t, 42, 7)

	stdout, _, err := executeCommand(t, "--count", "2", "--interval", "1ms")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Hello World from Rust! Random number: 42",
		wantRecordLine,
		"Date match: true",
		"Hello World from Rust! Random number: 7",
		wantRecordLine,
		"Date match: true",
	}, splitLines(stdout))
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"zero interval", []string{"--interval", "0s", "--count", "1"}, "interval must be positive"},
		{"negative count", []string{"--count", "-1"}, "count must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, stdout)
		})
	}
}

func TestRun_RejectsArguments(t *testing.T) {
	_, _, err := executeCommand(t, "extra")
	assert.Error(t, err)
}

func TestRun_EnvironmentOverride(t *testing.T) {
	withSource(t, 1)
	t.Setenv("HEARTBEAT_COUNT", "1")

	stdout, _, err := executeCommand(t, "--interval", "1ms")
	require.NoError(t, err)
	assert.Len(t, splitLines(stdout), 3)
}

func TestRun_MetricsServer(t *testing.T) {
	withSource(t, 9)

	stdout, stderr, err := executeCommand(t, "--count", "1", "--interval", "1ms", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)

	assert.Len(t, splitLines(stdout), 3)
	assert.Contains(t, stderr, "Serving http://127.0.0.1:")
}

func TestRun_MetricsServerQuiet(t *testing.T) {
	withSource(t, 9)

	_, stderr, err := executeCommand(t, "--count", "1", "--interval", "1ms", "--metrics-addr", "127.0.0.1:0", "--quiet")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Serving")
}

func TestRun_MetricsServerBadAddress(t *testing.T) {
	_, _, err := executeCommand(t, "--count", "1", "--metrics-addr", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting server")
}

func TestRun_Progress(t *testing.T) {
	withSource(t, 3)
	t.Setenv("HEARTBEAT_TEST", "true")

	stdout, stderr, err := executeCommand(t, "--count", "2", "--interval", "1ms", "--progress")
	require.NoError(t, err)

	assert.Len(t, splitLines(stdout), 6)
	assert.Contains(t, stderr, "[SPINNER START]")
	assert.Contains(t, stderr, "[SPINNER STOP]")
	assert.Contains(t, stderr, "next beat in 1ms")
}

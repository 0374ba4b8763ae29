package heartbeat

import (
	"os"
	"testing"

	// Silence zerolog unless HEARTBEAT_TEST_LOG is set
	_ "github.com/lacquerai/heartbeat/internal/testhelper"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

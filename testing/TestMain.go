package testing

import (
	"os"
	stdtesting "testing"
)

// Importing this package from a _test.go file marks the process as a
// test run before any application code reads the flag.
func init() {
	_ = os.Setenv("DREAMTEAM_TEST_MODE", "1")
	if os.Getenv("REDIS_ADDR") == "" {
		_ = os.Setenv("REDIS_ADDR", "127.0.0.1:0")
	}
}

func TestMain(m *stdtesting.M) {
	os.Exit(m.Run())
}

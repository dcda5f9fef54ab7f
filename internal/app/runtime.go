package app

import (
	"os"
	"sync"
)

const testModeEnv = "DREAMTEAM_TEST_MODE"

var (
	testModeMu     sync.RWMutex
	testModeCached bool
	testModeRead   bool
)

// InTestMode reports whether the process runs under the test harness.
// Binaries use it to refuse startup inside `go test`.
func InTestMode() bool {
	testModeMu.RLock()
	if testModeRead {
		v := testModeCached
		testModeMu.RUnlock()
		return v
	}
	testModeMu.RUnlock()

	testModeMu.Lock()
	defer testModeMu.Unlock()
	if !testModeRead {
		testModeCached = os.Getenv(testModeEnv) == "1"
		testModeRead = true
	}
	return testModeCached
}

// RefreshTestMode re-reads the environment flag. Tests that flip the
// variable mid-run call this to invalidate the cached value.
func RefreshTestMode() {
	testModeMu.Lock()
	testModeCached = os.Getenv(testModeEnv) == "1"
	testModeRead = true
	testModeMu.Unlock()
}

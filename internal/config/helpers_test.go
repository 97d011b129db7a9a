package config

import (
	"os"
	"testing"
)

// unsetEnv removes key for the rest of the test. It must follow a t.Setenv for the
// same key so the original value is restored on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
}

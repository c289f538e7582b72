// Package testutil provides shared helpers for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempConfigFile writes contents to a vocabtok.yaml in a fresh temp directory
// and returns its path. The file is cleaned up with the test's temp dir.
func TempConfigFile(tb testing.TB, contents string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "vocabtok.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		tb.Fatalf("write config file: %v", err)
	}
	return path
}

// AllEqual reports whether every element of tokens equals want. Used to
// assert that encoding fully out-of-vocabulary input yields only the
// sentinel.
func AllEqual(tokens []int, want int) bool {
	for _, id := range tokens {
		if id != want {
			return false
		}
	}
	return true
}

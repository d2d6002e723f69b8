package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupDir creates a temporary directory holding the given files, keyed by
// relative name. It returns the absolute path to the directory.
// It fails the test immediately on error.
func SetupDir(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		WriteFile(t, absPath, name, content)
	}
	return absPath
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "Failed to create parent dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write fixture")
	return path
}

package testfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTempFileWithContent writes content into dir/name and returns the path. The file is
// removed when the test finishes.
func CreateTempFileWithContent(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0600), "failed to create test file '%s'", path)
	t.Cleanup(func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			t.Errorf("CreateTempFileWithContent Remove cleanup: %v", err)
		}
	})
	return path
}

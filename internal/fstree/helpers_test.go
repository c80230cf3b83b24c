package fstree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// surfaces lets a test run against both the concurrent and the blocking API.
var surfaces = []string{"async", "sync"}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// buildTree creates:
//
//	root/f.txt        "hello"
//	root/sub/g.txt    "world"
//	root/sub/deep/h.txt "deep"
//	root/empty/
func buildTree(t *testing.T, root string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "f.txt"), "hello")
	writeFile(t, filepath.Join(root, "sub", "g.txt"), "world")
	writeFile(t, filepath.Join(root, "sub", "deep", "h.txt"), "deep")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
}

// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory,
// creating parent directories as needed.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteJSON marshals v and writes it to a file in the specified directory.
func WriteJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	contents, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return WriteFile(t, dir, name, string(contents))
}

// WriteIOCTree builds a minimal on-disk IOC application layout rooted at dir:
// a boot directory with an st.cmd and a configure/RELEASE file holding the
// given contents. It returns the boot directory path.
func WriteIOCTree(t *testing.T, dir, name, releaseContents string) string {
	t.Helper()
	appDir := filepath.Join(dir, name)
	bootDir := filepath.Join(appDir, "iocBoot", "ioc-"+name)
	WriteFile(t, bootDir, "st.cmd", "# st.cmd\n")
	WriteFile(t, appDir, filepath.Join("configure", "RELEASE"), releaseContents)
	return bootDir
}

// Package workspace locates the project root a scan should start from
// and renders scan results as a tree.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// MarkerFiles identify a repository or monorepo root, checked in order.
var MarkerFiles = []string{
	"pnpm-workspace.yaml",
	"pnpm-lock.yaml",
	"turbo.json",
	"lerna.json",
	"go.work",
	"settings.gradle",
	"settings.gradle.kts",
	".git",
}

// FindRoot walks up from dir until a marker file is found. When no
// marker exists anywhere above, the starting directory is returned.
func FindRoot(dir string) (string, error) {
	original, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	dir = original

	for {
		for _, marker := range MarkerFiles {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return original, nil
		}
		dir = parent
	}
}

// IsWorkspace reports whether dir itself carries a marker file.
func IsWorkspace(dir string) bool {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for _, marker := range MarkerFiles {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindRoot(t *testing.T) {
	t.Run("finds marker above start dir", func(t *testing.T) {
		tmp := t.TempDir()
		if err := os.MkdirAll(filepath.Join(tmp, ".git"), 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		sub := filepath.Join(tmp, "apps", "web")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}

		root, err := FindRoot(sub)
		if err != nil {
			t.Fatalf("FindRoot() error = %v", err)
		}
		if root != tmp && root != mustResolve(t, tmp) {
			t.Errorf("FindRoot() = %q, want %q", root, tmp)
		}
	})

	t.Run("no marker falls back to start dir", func(t *testing.T) {
		tmp := t.TempDir()
		root, err := FindRoot(tmp)
		if err != nil {
			t.Fatalf("FindRoot() error = %v", err)
		}
		if root != tmp && root != mustResolve(t, tmp) {
			t.Errorf("FindRoot() = %q, want %q", root, tmp)
		}
	})
}

func mustResolve(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	return resolved
}

func TestIsWorkspace(t *testing.T) {
	tmp := t.TempDir()
	if IsWorkspace(tmp) {
		t.Error("IsWorkspace(empty dir) = true")
	}
	if err := os.WriteFile(filepath.Join(tmp, "turbo.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !IsWorkspace(tmp) {
		t.Error("IsWorkspace(dir with turbo.json) = false")
	}
}

func TestBuildTree(t *testing.T) {
	tree := BuildTree([]string{"b/.env", ".env", "a/.env.local"})
	if len(tree.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(tree.Children))
	}
	// Files sort before directories.
	if tree.Children[0].File != ".env" {
		t.Errorf("first child = %q, want the root .env file", tree.Children[0].Name)
	}
	if tree.Children[1].Name != "a" || tree.Children[2].Name != "b" {
		t.Errorf("directories not alphabetical: %q, %q", tree.Children[1].Name, tree.Children[2].Name)
	}

	var sb strings.Builder
	PrintTree(&sb, tree, "", true)
	out := sb.String()
	for _, want := range []string{".env", "a", ".env.local", "b"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

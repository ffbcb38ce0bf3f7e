package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHistory(t *testing.T) {
	t.Run("lists edits made through the cli", func(t *testing.T) {
		testFile := mustWriteEnv(t, "A=1\n")
		dir := filepath.Dir(testFile)

		if err := runSet(setCmd, []string{testFile, "A", "2"}); err != nil {
			t.Fatalf("runSet() error = %v", err)
		}
		if err := runRename(renameCmd, []string{testFile, "A", "B"}); err != nil {
			t.Fatalf("runRename() error = %v", err)
		}

		out := captureStdout(t, func() {
			if err := runHistory(historyCmd, []string{dir}); err != nil {
				t.Fatalf("runHistory() error = %v", err)
			}
		})

		if !strings.Contains(out, "set") || !strings.Contains(out, "rename") {
			t.Errorf("history should list set and rename:\n%s", out)
		}
	})

	t.Run("verify reports an intact chain", func(t *testing.T) {
		testFile := mustWriteEnv(t, "A=1\n")
		dir := filepath.Dir(testFile)

		if err := runSet(setCmd, []string{testFile, "A", "2"}); err != nil {
			t.Fatalf("runSet() error = %v", err)
		}

		historyVerify = true
		defer func() { historyVerify = false }()

		out := captureStdout(t, func() {
			if err := runHistory(historyCmd, []string{dir}); err != nil {
				t.Fatalf("runHistory() error = %v", err)
			}
		})

		if !strings.Contains(out, "chain intact") {
			t.Errorf("verify output = %q, want chain intact", out)
		}
	})

	t.Run("no history is not an error", func(t *testing.T) {
		dir := t.TempDir()

		out := captureStdout(t, func() {
			if err := runHistory(historyCmd, []string{dir}); err != nil {
				t.Fatalf("runHistory() error = %v", err)
			}
		})

		if !strings.Contains(out, "no history") {
			t.Errorf("output = %q, want a no-history note", out)
		}
	})
}

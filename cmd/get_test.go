package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunGet(t *testing.T) {
	t.Run("prints the value", func(t *testing.T) {
		testFile := mustWriteEnv(t, "A=hello\nB=world\n")

		out := captureStdout(t, func() {
			if err := runGet(getCmd, []string{testFile, "A"}); err != nil {
				t.Fatalf("runGet() error = %v", err)
			}
		})

		if got := strings.TrimSpace(out); got != "hello" {
			t.Errorf("get A = %q, want hello", got)
		}
	})

	t.Run("last occurrence wins on duplicates", func(t *testing.T) {
		testFile := mustWriteEnv(t, "A=first\nB=2\nA=last\n")

		out := captureStdout(t, func() {
			if err := runGet(getCmd, []string{testFile, "A"}); err != nil {
				t.Fatalf("runGet() error = %v", err)
			}
		})

		if got := strings.TrimSpace(out); got != "last" {
			t.Errorf("get A = %q, want last", got)
		}
	})

	t.Run("value is verbatim including quotes and spaces", func(t *testing.T) {
		testFile := mustWriteEnv(t, "A=\"quoted value\" \n")

		out := captureStdout(t, func() {
			if err := runGet(getCmd, []string{testFile, "A"}); err != nil {
				t.Fatalf("runGet() error = %v", err)
			}
		})

		if got := strings.TrimSuffix(out, "\n"); got != "\"quoted value\" " {
			t.Errorf("get A = %q, want verbatim value", got)
		}
	})

	t.Run("lowercase key is looked up as written", func(t *testing.T) {
		testFile := mustWriteEnv(t, "lower_key=works\nLOWER_KEY=other\n")

		out := captureStdout(t, func() {
			if err := runGet(getCmd, []string{testFile, "lower_key"}); err != nil {
				t.Fatalf("runGet() error = %v", err)
			}
		})

		if got := strings.TrimSpace(out); got != "works" {
			t.Errorf("get lower_key = %q, want works (key must not be uppercased)", got)
		}
	})

	t.Run("missing key returns error", func(t *testing.T) {
		testFile := mustWriteEnv(t, "A=1\n")

		if err := runGet(getCmd, []string{testFile, "MISSING"}); err == nil {
			t.Error("runGet() should error for missing key")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), ".env")

		if err := runGet(getCmd, []string{missing, "A"}); err == nil {
			t.Error("runGet() should error for missing file")
		}
	})
}

// captureStdout runs fn with os.Stdout redirected to a pipe and
// returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = out.ReadFrom(r)
		close(done)
	}()

	fn()
	w.Close()
	<-done
	return out.String()
}

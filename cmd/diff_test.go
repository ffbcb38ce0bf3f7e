package cmd

import (
	"encoding/json"
	"testing"
)

func TestRunDiff(t *testing.T) {
	t.Run("json output lists one change per key ordered by key", func(t *testing.T) {
		before := mustWriteEnv(t, "A=1\nB=2\nD=4\n")
		after := mustWriteEnv(t, "A=1\nB=3\nC=new\n")

		diffOutput = "json"
		defer func() { diffOutput = "" }()

		out := captureStdout(t, func() {
			if err := runDiff(diffCmd, []string{before, after}); err != nil {
				t.Fatalf("runDiff() error = %v", err)
			}
		})

		var decoded struct {
			Changes []struct {
				Kind   string `json:"kind"`
				Key    string `json:"key"`
				Before string `json:"before"`
				After  string `json:"after"`
			} `json:"changes"`
		}
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("output not valid JSON: %v\n%s", err, out)
		}

		if len(decoded.Changes) != 3 {
			t.Fatalf("changes = %d, want 3", len(decoded.Changes))
		}
		if c := decoded.Changes[0]; c.Kind != "updated" || c.Key != "B" || c.Before != "2" || c.After != "3" {
			t.Errorf("changes[0] = %+v, want B updated 2->3", c)
		}
		if c := decoded.Changes[1]; c.Kind != "added" || c.Key != "C" || c.After != "new" {
			t.Errorf("changes[1] = %+v, want C added", c)
		}
		if c := decoded.Changes[2]; c.Kind != "removed" || c.Key != "D" || c.Before != "4" {
			t.Errorf("changes[2] = %+v, want D removed", c)
		}
	})

	t.Run("comment and blank changes are invisible", func(t *testing.T) {
		before := mustWriteEnv(t, "# old comment\nA=1\n")
		after := mustWriteEnv(t, "# new comment\n\nA=1\n")

		diffOutput = "json"
		defer func() { diffOutput = "" }()

		out := captureStdout(t, func() {
			if err := runDiff(diffCmd, []string{before, after}); err != nil {
				t.Fatalf("runDiff() error = %v", err)
			}
		})

		var decoded struct {
			Changes []json.RawMessage `json:"changes"`
		}
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("output not valid JSON: %v\n%s", err, out)
		}
		if len(decoded.Changes) != 0 {
			t.Errorf("changes = %d, want 0", len(decoded.Changes))
		}
	})

	t.Run("text flag appends a raw diff", func(t *testing.T) {
		before := mustWriteEnv(t, "A=1\n")
		after := mustWriteEnv(t, "A=2\n")

		diffText = true
		defer func() { diffText = false }()

		out := captureStdout(t, func() {
			if err := runDiff(diffCmd, []string{before, after}); err != nil {
				t.Fatalf("runDiff() error = %v", err)
			}
		})

		if out == "" {
			t.Error("runDiff() with --text should print something")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		before := mustWriteEnv(t, "A=1\n")

		if err := runDiff(diffCmd, []string{before, before + ".missing"}); err == nil {
			t.Error("runDiff() should error for missing file")
		}
	})
}

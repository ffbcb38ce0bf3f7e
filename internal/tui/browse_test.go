package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/scanner"
)

func TestBrowseScanLifecycle(t *testing.T) {
	t.Run("initial scan starts through update", func(t *testing.T) {
		m := NewBrowse(t.TempDir(), scanner.Options{}, false)

		cmd := m.Init()
		if cmd == nil {
			t.Fatal("Init() returned no command")
		}
		model, _ := m.Update(cmd())
		got := model.(BrowseModel)

		if got.phase != phaseScanning {
			t.Errorf("phase after Init = %d, want scanning (%d)", got.phase, phaseScanning)
		}
		if got.cancel == nil {
			t.Error("cancel is nil after Init; esc cannot abort the initial scan")
		}
	})

	t.Run("esc during scan cancels back to idle, not quit", func(t *testing.T) {
		m := NewBrowse(t.TempDir(), scanner.Options{}, false)
		model, _ := m.Update(startScanMsg{})
		scanning := model.(BrowseModel)

		model, cmd := scanning.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if cmd != nil {
			t.Error("esc while scanning should cancel, not emit a command")
		}
		model, _ = model.(BrowseModel).Update(scanCanceledMsg{})
		idle := model.(BrowseModel)

		if idle.phase != phaseIdle {
			t.Errorf("phase after cancel = %d, want idle (%d)", idle.phase, phaseIdle)
		}
		if idle.status != "scan canceled" {
			t.Errorf("status = %q, want scan canceled", idle.status)
		}
	})

	t.Run("scan results populate the file list", func(t *testing.T) {
		m := NewBrowse(t.TempDir(), scanner.Options{}, false)
		model, _ := m.Update(startScanMsg{})

		res := &scanner.Result{Groups: []scanner.Group{
			{Name: "api", Files: []document.FileRef{{FileName: ".env", AbsolutePath: "/p/api/.env"}}},
			{Name: "web", Files: []document.FileRef{{FileName: ".env.local", AbsolutePath: "/p/web/.env.local"}}},
		}}
		model, _ = model.(BrowseModel).Update(scanDoneMsg{res: res})
		done := model.(BrowseModel)

		if done.phase != phaseFiles {
			t.Errorf("phase after scan = %d, want files (%d)", done.phase, phaseFiles)
		}
		if len(done.files) != 2 {
			t.Errorf("files = %d, want 2", len(done.files))
		}
	})

	t.Run("failed scan is retryable", func(t *testing.T) {
		m := NewBrowse(t.TempDir(), scanner.Options{}, false)
		model, _ := m.Update(startScanMsg{})
		model, _ = model.(BrowseModel).Update(scanFailedMsg{err: errors.New("boom")})
		failed := model.(BrowseModel)

		if failed.phase != phaseFailed {
			t.Fatalf("phase after failure = %d, want failed (%d)", failed.phase, phaseFailed)
		}
		model, _ = failed.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
		retried := model.(BrowseModel)
		if retried.phase != phaseScanning {
			t.Errorf("phase after retry = %d, want scanning (%d)", retried.phase, phaseScanning)
		}
	})
}

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	t.Run("write triggers debounced notification", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		if err := os.WriteFile(path, []byte("A=1\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		w, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer w.Close()

		if err := w.Add(path); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		ch := w.Start()

		if err := os.WriteFile(path, []byte("A=2\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("no change notification within 5s")
		}
	})

	t.Run("file created after Add is seen via its directory", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")

		w, err := New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer w.Close()

		if err := w.Add(path); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		ch := w.Start()

		if err := os.WriteFile(path, []byte("A=1\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("no notification for newly created file")
		}
	})
}

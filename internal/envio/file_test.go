package envio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	t.Run("returns content and reference", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		if err := os.WriteFile(path, []byte("A=1\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		raw, ref, err := Read(path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if raw != "A=1\n" {
			t.Errorf("raw = %q", raw)
		}
		if ref.FileName != ".env" {
			t.Errorf("FileName = %q", ref.FileName)
		}
		if ref.FolderPath != tmp {
			t.Errorf("FolderPath = %q, want %q", ref.FolderPath, tmp)
		}
		if ref.Size != 4 {
			t.Errorf("Size = %d, want 4", ref.Size)
		}
		if len(ref.ID) != 64 {
			t.Errorf("ID = %q, want sha256 hex", ref.ID)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, _, err := Read(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("Read(missing) should error")
		}
	})
}

func TestWrite(t *testing.T) {
	t.Run("replaces content", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		if err := os.WriteFile(path, []byte("OLD=1\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		if err := Write(path, "NEW=2\n", WriteOptions{}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "NEW=2\n" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("backup copies previous content aside", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		if err := os.WriteFile(path, []byte("OLD=1\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		if err := Write(path, "NEW=2\n", WriteOptions{CreateBackup: true}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		backups, err := filepath.Glob(filepath.Join(tmp, ".*.backup-*"))
		if err != nil || len(backups) != 1 {
			t.Fatalf("backups = %v, err = %v, want exactly one", backups, err)
		}
		data, _ := os.ReadFile(backups[0])
		if string(data) != "OLD=1\n" {
			t.Errorf("backup content = %q, want previous content", data)
		}
		if !strings.HasPrefix(filepath.Base(backups[0]), "..env.backup-") {
			t.Errorf("backup name = %q", filepath.Base(backups[0]))
		}
	})

	t.Run("backup skipped when file does not exist yet", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		if err := Write(path, "A=1\n", WriteOptions{CreateBackup: true}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		backups, _ := filepath.Glob(filepath.Join(tmp, ".*.backup-*"))
		if len(backups) != 0 {
			t.Errorf("backups = %v, want none", backups)
		}
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		if err := Write(path, "A=1\n", WriteOptions{}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		leftovers, _ := filepath.Glob(filepath.Join(tmp, ".*.tmp-*"))
		if len(leftovers) != 0 {
			t.Errorf("temp files left: %v", leftovers)
		}
	})
}

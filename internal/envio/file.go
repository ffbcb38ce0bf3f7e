// Package envio reads and writes env files on behalf of the editing
// session. Writes are atomic: content lands in a temp file in the
// same directory, is synced, then renamed over the target.
package envio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/envlens/envlens/internal/document"
)

const stampLayout = "20060102150405"

// WriteOptions controls how Write treats the existing file.
type WriteOptions struct {
	// CreateBackup copies the current file to
	// .NAME.backup-YYYYMMDDHHMMSS before overwriting.
	CreateBackup bool
}

// Ref stats path and builds its file reference.
func Ref(path string) (document.FileRef, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return document.FileRef{}, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return document.FileRef{}, fmt.Errorf("stat %s: %w", abs, err)
	}
	return document.FileRef{
		ID:           document.PathID(abs),
		AbsolutePath: abs,
		FileName:     filepath.Base(abs),
		FolderPath:   filepath.Dir(abs),
		Size:         info.Size(),
		ModifiedAt:   info.ModTime().UnixMilli(),
	}, nil
}

// Read loads the file and its reference.
func Read(path string) (string, document.FileRef, error) {
	ref, err := Ref(path)
	if err != nil {
		return "", document.FileRef{}, err
	}
	data, err := os.ReadFile(ref.AbsolutePath)
	if err != nil {
		return "", document.FileRef{}, fmt.Errorf("read %s: %w", ref.AbsolutePath, err)
	}
	return string(data), ref, nil
}

// Write replaces the file content atomically, optionally copying the
// previous content aside first. On any error the target file is left
// as it was.
func Write(path, content string, opts WriteOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	dir := filepath.Dir(abs)
	name := filepath.Base(abs)
	stamp := time.Now().Format(stampLayout)

	if opts.CreateBackup {
		if _, err := os.Stat(abs); err == nil {
			backup := filepath.Join(dir, fmt.Sprintf(".%s.backup-%s", name, stamp))
			if err := copyFile(abs, backup); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", name, stamp))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, abs); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", abs, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

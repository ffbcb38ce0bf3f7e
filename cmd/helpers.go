package cmd

import (
	"fmt"

	"github.com/envlens/envlens/internal/config"
	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/envio"
	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/workspace"
)

// openSession reads an env file into an editing session.
func openSession(path string) (*document.Session, error) {
	raw, ref, err := envio.Read(path)
	if err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return document.NewSession(ref, raw), nil
}

// saveSession writes the working text back and, only on success,
// advances the saved snapshot. A failed write leaves the session
// untouched so no edits are lost.
func saveSession(s *document.Session, backup bool) error {
	opts := envio.WriteOptions{CreateBackup: backup}
	if err := envio.Write(s.File().AbsolutePath, s.RawText(), opts); err != nil {
		return fmt.Errorf("save env file: %w", err)
	}
	s.Apply(document.MarkSaved{})
	return nil
}

// backupEnabled resolves the effective backup policy: an explicit
// --backup flag wins, otherwise the workspace config decides.
func backupEnabled(flag bool, dir string) bool {
	if flag {
		return true
	}
	root, err := workspace.FindRoot(dir)
	if err != nil {
		return false
	}
	cfg, err := config.Load(root)
	if err != nil {
		return false
	}
	return cfg.Backup.Enabled
}

// normalizeKeyArg applies the editor's key policy and rejects names
// that normalize to nothing.
func normalizeKeyArg(raw string) (string, error) {
	key, ok := envline.NormalizeKey(raw)
	if !ok {
		return "", fmt.Errorf("key name is empty")
	}
	return key, nil
}

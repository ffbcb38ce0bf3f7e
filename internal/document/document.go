// Package document binds the env-line model to files on disk: a file
// reference, the document around it, and the editing session that
// keeps the structured and raw views synchronized.
package document

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/envlens/envlens/internal/envline"
)

// FileRef identifies an env file found on disk. ID is stable across
// runs: the hex SHA-256 of the absolute path.
type FileRef struct {
	ID           string `json:"id"`
	AbsolutePath string `json:"absolutePath"`
	FileName     string `json:"fileName"`
	FolderPath   string `json:"folderPath"`
	Size         int64  `json:"size"`
	ModifiedAt   int64  `json:"modifiedAt"`
}

// Document pairs a file reference with its parsed line sequence. A
// Document is owned by the session editing it and replaced wholesale
// on open or revert, never partially aliased.
type Document struct {
	File  FileRef
	Lines []envline.Line
}

// PathID derives the stable identifier for a path.
func PathID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

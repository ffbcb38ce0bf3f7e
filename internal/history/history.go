// Package history keeps an append-only log of edits made through the
// tool, one JSON object per line under .envlens/history.logl. Entries
// are hash-chained so tampering is detectable.
package history

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	historyDir  = ".envlens"
	historyFile = "history.logl"
)

var (
	ErrNoHistory = errors.New("no history log found")
	mu           sync.Mutex
)

type Op string

const (
	OpSet    Op = "set"
	OpRename Op = "rename"
	OpUnset  Op = "unset"
	OpSave   Op = "save"
	OpRevert Op = "revert"
)

// Entry is one recorded edit. Keys lists the variable names touched;
// values are never logged.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Op        Op        `json:"op"`
	File      string    `json:"file"`
	Keys      []string  `json:"keys,omitempty"`
	PrevHash  string    `json:"prev_hash"`
}

func logPath(dir string) string {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return filepath.Join(dir, historyDir, historyFile)
}

func lastHash(dir string) string {
	f, err := os.Open(logPath(dir))
	if err != nil {
		return ""
	}
	defer f.Close()

	var lastLine string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lastLine = sc.Text()
	}
	if lastLine == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(lastLine))
	return hex.EncodeToString(sum[:])
}

// Log appends one entry to the history under dir.
func Log(dir string, op Op, file string, keys ...string) error {
	mu.Lock()
	defer mu.Unlock()

	path := logPath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ensure history dir: %w", err)
	}

	entry := Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Op:        op,
		File:      file,
		Keys:      keys,
		PrevHash:  lastHash(dir),
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, string(b)); err != nil {
		return fmt.Errorf("write history log: %w", err)
	}
	return nil
}

// Show returns the last n entries, oldest first. n <= 0 returns all.
func Show(dir string, n int) ([]Entry, error) {
	f, err := os.Open(logPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	var entries []Entry
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// VerifyResult reports hash-chain integrity. Breaks holds 1-based
// entry numbers whose prev_hash does not match the previous line.
type VerifyResult struct {
	TotalEntries int
	Breaks       []int
}

// Verify rechecks the hash chain of the log under dir.
func Verify(dir string) (*VerifyResult, error) {
	f, err := os.Open(logPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}

	result := &VerifyResult{TotalEntries: len(lines)}
	if len(lines) == 0 {
		return result, nil
	}

	var first Entry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil || first.PrevHash != "" {
		result.Breaks = append(result.Breaks, 1)
	}

	for i := 1; i < len(lines); i++ {
		sum := sha256.Sum256([]byte(lines[i-1]))
		want := hex.EncodeToString(sum[:])

		var e Entry
		if err := json.Unmarshal([]byte(lines[i]), &e); err != nil {
			result.Breaks = append(result.Breaks, i+1)
			continue
		}
		if e.PrevHash != want {
			result.Breaks = append(result.Breaks, i+1)
		}
	}
	return result, nil
}

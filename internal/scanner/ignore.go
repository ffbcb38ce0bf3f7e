package scanner

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type ignoreRule struct {
	pattern string // doublestar syntax, forward slashes
	dirOnly bool   // trailing slash: directories only
	anchor  bool   // leading slash: match only at scan root
}

// IgnoreMatcher applies .gitignore-style rules to paths relative to
// the scan root. A nil matcher ignores nothing.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// LoadGitignore reads root/.gitignore into a matcher. Returns nil when
// no usable rules exist.
func LoadGitignore(root string) (*IgnoreMatcher, error) {
	path := filepath.Join(root, ".gitignore")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rules []ignoreRule
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dirOnly := strings.HasSuffix(line, "/")
		line = strings.TrimSuffix(line, "/")
		anchor := strings.HasPrefix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}

		rules = append(rules, ignoreRule{
			pattern: filepath.ToSlash(line),
			dirOnly: dirOnly,
			anchor:  anchor,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(rules) == 0 {
		return nil, nil
	}
	return &IgnoreMatcher{rules: rules}, nil
}

// ShouldIgnore reports whether the relative path matches any rule.
func (m *IgnoreMatcher) ShouldIgnore(relPath string, isDir bool) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}

	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "/")

	for _, r := range m.rules {
		if r.anchor {
			if relPath == r.pattern || strings.HasPrefix(relPath, r.pattern+"/") {
				return true
			}
			continue
		}

		if r.dirOnly && !isDir {
			// Files under an ignored directory.
			under := strings.TrimPrefix(r.pattern, "**/")
			if under != "" && (strings.HasPrefix(relPath, under+"/") || strings.Contains(relPath, "/"+under+"/")) {
				return true
			}
			continue
		}

		if matched, err := doublestar.Match(r.pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(r.pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
		if r.dirOnly && isDir && (relPath == r.pattern || strings.HasPrefix(relPath, r.pattern+"/")) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether the relative path matches any of the
// configured exclude patterns, against the full path or the base name.
func MatchesAny(relPath string, patterns []string) bool {
	rel := filepath.ToSlash(relPath)
	base := filepath.Base(rel)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		p = filepath.ToSlash(p)
		if matched, err := doublestar.Match(p, rel); err == nil && matched {
			return true
		}
		if p == base {
			return true
		}
		if matched, err := doublestar.Match(p, base); err == nil && matched {
			return true
		}
	}
	return false
}

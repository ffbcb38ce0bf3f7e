// Package scanner walks a directory tree looking for env files and
// groups the hits by project folder.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/envio"
)

var envFileName = regexp.MustCompile(`^\.env(\..+)?$`)

// IsEnvFileName reports whether a base name looks like an env file
// (.env, .env.local, .env.production, ...).
func IsEnvFileName(name string) bool {
	return envFileName.MatchString(name)
}

// DefaultExcludeDirs are directory names skipped during every scan.
func DefaultExcludeDirs() []string {
	return []string{
		"node_modules",
		".git",
		"dist",
		"build",
		".next",
		"target",
		".turbo",
		".cache",
	}
}

// Options tunes a scan. Zero value scans with the defaults.
type Options struct {
	ExcludeDirs  []string       // extra directory names to skip
	ExcludeFiles []string       // file patterns to skip (doublestar)
	Ignore       *IgnoreMatcher // .gitignore rules, may be nil
}

// Group is one project folder and the env files directly inside it.
type Group struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	RootPath string             `json:"rootPath"`
	Files    []document.FileRef `json:"envFiles"`
}

// Result is a completed scan: the resolved root and its groups,
// ordered by group name, files within a group ordered by name.
type Result struct {
	RootPath string  `json:"rootPath"`
	Groups   []Group `json:"groups"`
}

// Scan walks root and collects env files grouped by containing
// folder. The context is checked on every entry; cancellation aborts
// with ctx.Err(), which callers surface as a return to idle rather
// than a failure.
func Scan(ctx context.Context, root string, opts Options) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", absRoot)
	}

	excluded := make(map[string]bool)
	for _, d := range DefaultExcludeDirs() {
		excluded[d] = true
	}
	for _, d := range opts.ExcludeDirs {
		excluded[d] = true
	}

	byFolder := make(map[string][]document.FileRef)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != absRoot && excluded[d.Name()] {
				return filepath.SkipDir
			}
			if opts.Ignore.ShouldIgnore(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsEnvFileName(d.Name()) {
			return nil
		}
		if opts.Ignore.ShouldIgnore(rel, false) {
			return nil
		}
		if MatchesAny(rel, opts.ExcludeFiles) {
			return nil
		}

		ref, refErr := envio.Ref(path)
		if refErr != nil {
			// Raced deletion or permission problem; skip the file.
			return nil
		}
		byFolder[ref.FolderPath] = append(byFolder[ref.FolderPath], ref)
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(byFolder))
	for folder, files := range byFolder {
		sort.Slice(files, func(i, j int) bool { return files[i].FileName < files[j].FileName })
		groups = append(groups, Group{
			ID:       document.PathID(folder),
			Name:     filepath.Base(folder),
			RootPath: folder,
			Files:    files,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].RootPath < groups[j].RootPath
	})

	return &Result{RootPath: absRoot, Groups: groups}, nil
}

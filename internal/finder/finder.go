// Package finder locates files under a root directory by glob patterns.
package finder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// Finder matches relative file paths against a set of glob patterns.
type Finder struct {
	globs []glob.Glob
}

// New compiles the given patterns once. Patterns use '/' as the path
// separator regardless of platform, so "**/*.nuspec" works everywhere.
func New(patterns []string) (*Finder, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one glob pattern is required")
	}

	f := &Finder{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Match reports whether the slash-separated relative path matches any
// pattern.
func (f *Finder) Match(path string) bool {
	for _, g := range f.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Find walks root and returns the matching file paths, relative to root,
// slash-separated and sorted. Directories themselves are never returned.
func (f *Finder) Find(root string) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if f.Match(rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}

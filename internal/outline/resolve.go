package outline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// resolver turns a caller-supplied path into an existing regular file.
type resolver struct {
	roots  []string
	ignore []compiledPattern
	getwd  func() (string, error)
}

// resolvedFile is a file that passed resolution.
type resolvedFile struct {
	path string
	// rel is the path relative to the base it was found under, used for
	// ignore matching. Empty for absolute inputs.
	rel  string
	info fs.FileInfo
}

func newResolver(roots, ignorePatterns []string) (*resolver, error) {
	r := &resolver{getwd: os.Getwd}

	for _, root := range roots {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("invalid root %q: %w", root, err)
		}
		r.roots = append(r.roots, abs)
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		r.ignore = append(r.ignore, compiledPattern{pattern: pattern, glob: g})
	}

	return r, nil
}

// resolve tries, in order: the path as given when absolute, the path
// relative to the working directory, then relative to each configured root.
// The first existing regular file wins.
func (r *resolver) resolve(path string) (*resolvedFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is required", extraction.ErrInvalidArgument)
	}

	var candidates []resolvedFile
	if filepath.IsAbs(path) {
		candidates = append(candidates, resolvedFile{path: filepath.Clean(path)})
	} else {
		if wd, err := r.getwd(); err == nil {
			candidates = append(candidates, resolvedFile{path: filepath.Join(wd, path), rel: path})
		}
		for _, root := range r.roots {
			candidates = append(candidates, resolvedFile{path: filepath.Join(root, path), rel: path})
		}
	}

	for _, c := range candidates {
		info, err := os.Stat(c.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", extraction.ErrNotFound, path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if r.shouldIgnore(c) {
			return nil, fmt.Errorf("%w: %s is excluded by ignore patterns", extraction.ErrNotFound, path)
		}
		c.info = info
		return &c, nil
	}

	return nil, fmt.Errorf("%w: %s", extraction.ErrNotFound, path)
}

// shouldIgnore checks the absolute and, when known, the relative form of
// the path against every ignore pattern.
func (r *resolver) shouldIgnore(f resolvedFile) bool {
	abs := filepath.ToSlash(f.path)
	rel := filepath.ToSlash(f.rel)
	for _, p := range r.ignore {
		if p.glob.Match(abs) {
			return true
		}
		if rel != "" && p.glob.Match(rel) {
			return true
		}
	}
	return false
}

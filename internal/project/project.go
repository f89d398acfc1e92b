// Package project detects the version-control root that bounds env-file
// discovery and identifies the working project.
package project

import (
	"os"
	"path/filepath"
	"strings"
)

// Markers are the directory entries that mark a repository root, checked in
// order. The .git entry may be a directory or, in linked worktrees, a plain
// file pointing at the real git dir; either form marks the root.
var Markers = []string{".git", ".hg", ".svn"}

// Info describes a detected project.
type Info struct {
	Root string `json:"root"`          // repository root, or the start directory when none found
	VCS  string `json:"vcs,omitempty"` // marker name without the dot: "git", "hg", "svn"
}

// Detect locates the repository containing dir. When no marker is found, the
// returned Info carries the canonical form of dir itself and an empty VCS.
func Detect(dir string) Info {
	root, marker, ok := findMarker(dir)
	if !ok {
		return Info{Root: canonical(dir)}
	}
	return Info{Root: root, VCS: strings.TrimPrefix(marker, ".")}
}

// FindRoot returns the nearest ancestor of start (inclusive) that contains a
// version-control marker. The boolean reports whether one was found.
func FindRoot(start string) (string, bool) {
	root, _, ok := findMarker(start)
	return root, ok
}

// HasMarker reports whether dir itself contains a version-control marker.
func HasMarker(dir string) bool {
	for _, m := range Markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}

// findMarker walks from start toward the filesystem root. start is
// canonicalized once and every step moves to the parent, so the walk ends in
// at most the number of path segments even when symlinks form cycles.
func findMarker(start string) (root, marker string, found bool) {
	dir := canonical(start)
	for {
		for _, m := range Markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, m, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", false
		}
		dir = parent
	}
}

// canonical resolves path to an absolute, symlink-free form, falling back to
// the cleaned absolute path when resolution fails.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

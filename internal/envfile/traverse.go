package envfile

import "path/filepath"

// traverseUp returns start and its ancestors, nearest first, stopping
// inclusively at root (when haveRoot is true) or at the filesystem root.
// Both start and root must already be canonical absolute paths; the walk is
// purely lexical, so symlink cycles cannot loop it.
func traverseUp(start, root string, haveRoot bool) []string {
	var dirs []string
	dir := start
	for {
		dirs = append(dirs, dir)
		if haveRoot && dir == root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dirs
}

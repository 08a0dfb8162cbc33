// Package reconstruct is the executor: it unpacks one .deb into a scratch
// directory, replays a planner.Action sequence against the control record
// and payload tree, and repacks the result.
package reconstruct

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvePath joins rel onto root, canonicalizes it, and rejects any result
// that is neither root itself nor a prefix-descendant of root, guarding
// against both ".." traversal and symlink-mediated escape.
//
// This deliberately doesn't require the target to already exist (unlike a
// plain os.Readlink-chasing canonicalize would): it resolves symlinks only
// along the longest existing ancestor and joins the rest lexically, since
// file operations like "add" and "mkdir" legitimately target paths that
// don't exist yet.
func resolvePath(root, rel string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving scratch root: %w", err)
	}
	rootAbs, err = filepath.EvalSymlinks(rootAbs)
	if err != nil {
		return "", fmt.Errorf("resolving scratch root: %w", err)
	}

	joined := filepath.Join(rootAbs, rel)
	resolved, err := evalSymlinksBestEffort(joined)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", rel, err)
	}

	if resolved != rootAbs && !strings.HasPrefix(resolved, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes scratch root: %q", rel)
	}
	return resolved, nil
}

// evalSymlinksBestEffort resolves symlinks along the longest existing
// ancestor of p, then lexically rejoins whatever suffix doesn't exist yet.
func evalSymlinksBestEffort(p string) (string, error) {
	cleaned := filepath.Clean(p)
	if _, err := os.Lstat(cleaned); err == nil {
		return filepath.EvalSymlinks(cleaned)
	}
	dir := filepath.Dir(cleaned)
	base := filepath.Base(cleaned)
	if dir == cleaned {
		return cleaned, nil
	}
	resolvedDir, err := evalSymlinksBestEffort(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

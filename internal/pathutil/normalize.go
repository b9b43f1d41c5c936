// Package pathutil provides filesystem path canonicalization for the
// PCDS EPICS deployment tree.
//
// Deployment paths show up in IOC metadata and RELEASE files under several
// historical mount conventions (/reg/g/pcds vs /cds/group/pcds, stale
// /reg/neh home mounts). Normalize rewrites them all to the current layout
// so that downstream classification and deduplication key on one spelling.
package pathutil

import (
	"os/user"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	legacyGroupPrefix  = "/reg/g/pcds"
	currentGroupPrefix = "/cds/group/pcds"
	legacyHomeRoot     = "/reg/neh"
)

// maxNormalizeIterations caps the rewrite loop. Each rewrite can expose
// another rewritable prefix (and symlink resolution can re-introduce one),
// so normalization iterates to a fixed point; a pathological symlink cycle
// must not hang the scan, so after this many rounds the last value wins.
const maxNormalizeIterations = 16

// Normalize canonicalizes a deployment path.
//
// It repeatedly expands a leading home-directory shortcut, resolves the
// path to an absolute symlink-free form, rewrites the deprecated
// /reg/g/pcds mount to /cds/group/pcds, and rewrites stale /reg/neh home
// mounts through the owning user's current home directory, until the
// result stops changing.
func Normalize(path string) string {
	last := ""
	for i := 0; i < maxNormalizeIterations && path != last; i++ {
		last = path
		path = expandUser(path)
		path = resolve(path)
		if rest, ok := trimPrefix(path, legacyGroupPrefix); ok {
			path = currentGroupPrefix + rest
		}
		if home, ok := legacyHomePath(path); ok {
			path = expandUser(home)
		}
	}
	return path
}

// expandUser expands a leading ~ or ~username component.
func expandUser(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	if expanded, err := homedir.Expand(path); err == nil && expanded != path {
		return expanded
	}
	// homedir only handles the current user; look up ~username directly.
	rest := path[1:]
	name := rest
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		name = rest[:idx]
		rest = rest[idx:]
	} else {
		rest = ""
	}
	u, err := user.Lookup(name)
	if err != nil {
		return path
	}
	return u.HomeDir + rest
}

// resolve returns an absolute, symlink-resolved form of path. Components
// that do not exist are kept as-is on top of the deepest resolvable
// ancestor, mirroring a non-strict resolve.
func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return resolveSymlinks(abs)
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved
	}
	dir, base := filepath.Split(filepath.Clean(path))
	dir = strings.TrimSuffix(dir, string(filepath.Separator))
	if dir == "" || dir == path {
		return path
	}
	return filepath.Join(resolveSymlinks(dir), base)
}

// trimPrefix reports whether path is prefix or lives under it, returning
// the remainder (with leading separator) when it does.
func trimPrefix(path, prefix string) (string, bool) {
	if path == prefix {
		return "", true
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):], true
	}
	return "", false
}

// legacyHomePath rewrites /reg/neh/home*/<user>/... into ~<user>/... so
// that the stale mount is re-anchored at the user's current home.
func legacyHomePath(path string) (string, bool) {
	rest, ok := trimPrefix(path, legacyHomeRoot)
	if !ok {
		return "", false
	}
	parts := strings.Split(strings.TrimPrefix(rest, "/"), "/")
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "home") {
		return "", false
	}
	return "~" + strings.Join(parts[1:], "/"), true
}

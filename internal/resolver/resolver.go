// Package resolver canonicalizes filesystem paths: absolute, no "." or ".."
// segments, and no symbolic-link components. It provides a built-in
// resolution algorithm plus an adapter for the platform's own
// canonicalization utility, behind a common Canonicalizer interface.
package resolver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultMaxDepth bounds symlink expansions during resolution. It matches
// the kernel's own symlink-loop limit (ELOOP fires at 40 on Linux).
const DefaultMaxDepth = 40

// Canonicalizer produces the canonical absolute form of a path.
type Canonicalizer interface {
	Canonicalize(ctx context.Context, path string) (string, error)
}

// Resolver implements canonicalization one directory component at a time,
// following symlinks as they are encountered. It queries the filesystem
// read-only and holds no state between calls, so a single Resolver is safe
// for concurrent use.
type Resolver struct {
	maxDepth int
}

func New() *Resolver {
	return &Resolver{maxDepth: DefaultMaxDepth}
}

// NewWithDepth returns a Resolver allowing at most maxDepth symlink
// expansions. Values < 1 fall back to DefaultMaxDepth.
func NewWithDepth(maxDepth int) *Resolver {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{maxDepth: maxDepth}
}

// Canonicalize implements Canonicalizer.
func (r *Resolver) Canonicalize(_ context.Context, path string) (string, error) {
	return r.Resolve(path)
}

// Resolve returns the canonical absolute form of path. A nonexistent leaf
// is not an error: the path comes back as if every existing ancestor
// symlink were resolved, with the missing components appended literally.
// Following more than the configured number of symlinks fails with a
// ResolutionError wrapping ErrTooManyLinks.
func (r *Resolver) Resolve(path string) (string, error) {
	return r.resolve(path, 0)
}

func (r *Resolver) resolve(path string, links int) (string, error) {
	log.Debug().Str("path", path).Int("links", links).Msg("resolve step")

	if path == "/" {
		return "/", nil
	}

	dir := filepath.Dir(path)
	name := filepath.Base(path)

	// A trailing ".." is not a real leaf. Treat the whole input as a
	// directory and let the recursive resolution of the parent chain
	// strip it, so "a/b/../c" collapses against a's real parent even
	// when b is a symlink.
	if name == ".." {
		dir = path
		name = "."
	}

	absDir := r.chase(dir)

	if name == "." {
		return r.resolve(absDir, links)
	}

	full := absDir + "/" + name
	if absDir == "/" {
		full = "/" + name
	}

	if target, err := os.Readlink(full); err == nil {
		if links+1 > r.maxDepth {
			return "", &ResolutionError{Path: path, Err: ErrTooManyLinks}
		}
		log.Debug().Str("link", full).Str("target", target).Msg("following symlink")

		if filepath.IsAbs(target) {
			return r.resolve(target, links+1)
		}
		// Relative targets are interpreted against the link's directory.
		return r.resolve(absDir+"/"+target, links+1)
	}

	if absDir == "/" {
		return "/" + name, nil
	}

	resolved, err := r.resolve(absDir, links)
	if err != nil {
		return "", err
	}
	return resolved + "/" + name, nil
}

// chase turns dir into a cleaned absolute directory path. When the
// directory cannot be traversed (nonexistent or inaccessible ancestors)
// the cleaned string is kept as-is, so paths to not-yet-created files
// still canonicalize best-effort.
func (r *Resolver) chase(dir string) string {
	abs := dir
	if !filepath.IsAbs(abs) {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Clean(abs)
		}
		abs = filepath.Join(wd, abs)
	} else {
		abs = filepath.Clean(abs)
	}

	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		log.Debug().Str("dir", abs).Msg("directory not traversable, using literal path")
	}

	return abs
}

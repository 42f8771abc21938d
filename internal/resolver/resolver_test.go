package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, r *Resolver, path string) string {
	t.Helper()
	got, err := r.Resolve(path)
	require.NoError(t, err, "resolve %s", path)
	return got
}

func TestResolve_RootFixedPoint(t *testing.T) {
	r := New()
	require.Equal(t, "/", mustResolve(t, r, "/"))
}

func TestResolve_Absoluteness(t *testing.T) {
	r := New()
	base := t.TempDir()

	inputs := []string{
		"/",
		base,
		base + "/nosuchfile",
		base + "/a/./b",
		base + "/a/b/../c",
		".",
		"somefile",
	}

	for _, input := range inputs {
		got := mustResolve(t, r, input)
		require.True(t, strings.HasPrefix(got, "/"), "Resolve(%q) = %q is not absolute", input, got)
	}
}

func TestResolve_Idempotence(t *testing.T) {
	r := New()
	base := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(base, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(base, "real"), filepath.Join(base, "link")))

	inputs := []string{
		"/",
		base,
		base + "/link",
		base + "/link/nosuchfile",
		base + "/real/../real",
	}

	for _, input := range inputs {
		once := mustResolve(t, r, input)
		twice := mustResolve(t, r, once)
		require.Equal(t, once, twice, "Resolve not idempotent for %q", input)
	}
}

func TestResolve_DotSegmentElimination(t *testing.T) {
	r := New()
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "a"), 0o755))

	require.Equal(t,
		mustResolve(t, r, base+"/a/b"),
		mustResolve(t, r, base+"/a/./b"),
	)
}

func TestResolve_ParentSegmentElimination(t *testing.T) {
	r := New()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "a", "b"), 0o755))

	require.Equal(t,
		mustResolve(t, r, base+"/a/c"),
		mustResolve(t, r, base+"/a/b/../c"),
	)
}

// Parent elimination happens before the symlink under it would otherwise
// redirect: a/b/../c must land in a, not in b's target.
func TestResolve_ParentSegmentBeatsSymlink(t *testing.T) {
	r := New()
	base := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(base, "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "x", "y"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(base, "x", "y"), filepath.Join(base, "a", "b")))

	got := mustResolve(t, r, base+"/a/b/../c")
	require.Equal(t, mustResolve(t, r, base+"/a/c"), got)
	require.NotEqual(t, mustResolve(t, r, base+"/x/c"), got)
}

func TestResolve_SymlinkAbsoluteTarget(t *testing.T) {
	r := New()
	base := t.TempDir()

	target := filepath.Join(base, "real", "target")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(base, "link")))

	require.Equal(t,
		mustResolve(t, r, target),
		mustResolve(t, r, base+"/link"),
	)
}

func TestResolve_SymlinkRelativeTarget(t *testing.T) {
	r := New()
	base := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(base, "a"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(base, "b"), 0o755))
	require.NoError(t, os.Symlink("../b", filepath.Join(base, "a", "link")))

	require.Equal(t,
		mustResolve(t, r, base+"/b"),
		mustResolve(t, r, base+"/a/link"),
	)
}

func TestResolve_SymlinkChain(t *testing.T) {
	r := New()
	base := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(base, "end"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(base, "end"), filepath.Join(base, "hop2")))
	require.NoError(t, os.Symlink(filepath.Join(base, "hop2"), filepath.Join(base, "hop1")))

	require.Equal(t,
		mustResolve(t, r, base+"/end/file"),
		mustResolve(t, r, base+"/hop1/file"),
	)
}

func TestResolve_NonexistentLeaf(t *testing.T) {
	r := New()
	base := t.TempDir()

	require.Equal(t,
		mustResolve(t, r, base)+"/nosuchfile",
		mustResolve(t, r, base+"/nosuchfile"),
	)
}

func TestResolve_NonexistentAncestors(t *testing.T) {
	r := New()
	base := t.TempDir()

	require.Equal(t,
		mustResolve(t, r, base)+"/no/such/dir/file",
		mustResolve(t, r, base+"/no/such/dir/file"),
	)
}

func TestResolve_SlashNoise(t *testing.T) {
	r := New()
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "a"), 0o755))

	want := mustResolve(t, r, base+"/a")
	require.Equal(t, want, mustResolve(t, r, base+"//a"))
	require.Equal(t, want, mustResolve(t, r, base+"/a/"))
}

func TestResolve_RelativeInput(t *testing.T) {
	r := New()
	base := t.TempDir()
	t.Chdir(base)

	require.Equal(t,
		mustResolve(t, r, base)+"/somefile",
		mustResolve(t, r, "somefile"),
	)
	require.Equal(t,
		mustResolve(t, r, base),
		mustResolve(t, r, "."),
	)
}

func TestResolve_CycleSelf(t *testing.T) {
	r := New()
	base := t.TempDir()

	self := filepath.Join(base, "self")
	require.NoError(t, os.Symlink(self, self))

	_, err := r.Resolve(self)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTooManyLinks)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestResolve_CycleMutual(t *testing.T) {
	r := New()
	base := t.TempDir()

	ping := filepath.Join(base, "ping")
	pong := filepath.Join(base, "pong")
	require.NoError(t, os.Symlink(pong, ping))
	require.NoError(t, os.Symlink(ping, pong))

	_, err := r.Resolve(ping)
	require.ErrorIs(t, err, ErrTooManyLinks)
}

func TestResolve_DepthBound(t *testing.T) {
	base := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(base, "end"), 0o755))
	prev := filepath.Join(base, "end")
	for _, name := range []string{"l5", "l4", "l3", "l2", "l1"} {
		link := filepath.Join(base, name)
		require.NoError(t, os.Symlink(prev, link))
		prev = link
	}

	// five expansions exceed a bound of three but fit the default
	_, err := NewWithDepth(3).Resolve(base + "/l1")
	require.ErrorIs(t, err, ErrTooManyLinks)

	got := mustResolve(t, New(), base+"/l1")
	require.Equal(t, mustResolve(t, New(), base+"/end"), got)
}

func TestNewWithDepth_Fallback(t *testing.T) {
	require.Equal(t, DefaultMaxDepth, NewWithDepth(0).maxDepth)
	require.Equal(t, DefaultMaxDepth, NewWithDepth(-5).maxDepth)
	require.Equal(t, 7, NewWithDepth(7).maxDepth)
}

func TestResolver_Canonicalize(t *testing.T) {
	r := New()
	base := t.TempDir()

	got, err := r.Canonicalize(t.Context(), base+"/a/./b")
	require.NoError(t, err)
	require.Equal(t, mustResolve(t, r, base+"/a/b"), got)
}

func TestResolutionError_Unwrap(t *testing.T) {
	err := &ResolutionError{Path: "/loop", Err: ErrTooManyLinks}
	require.True(t, errors.Is(err, ErrTooManyLinks))
	require.Contains(t, err.Error(), "/loop")
}

package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o600))
}

func TestResolve_SiblingFastPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"))

	got, ok := Resolve("a.md", dir)
	require.True(t, ok)
	require.Equal(t, NormalizePath(filepath.Join(dir, "a.md")), got)
}

func TestResolve_SubtreeScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "deeper", "b.md"))

	got, ok := Resolve("b.md", dir)
	require.True(t, ok)
	require.Equal(t, NormalizePath(filepath.Join(dir, "sub", "deeper", "b.md")), got)
}

func TestResolve_NotFoundIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	got, ok := Resolve("missing.md", dir)
	require.False(t, ok)
	require.Empty(t, got)
}

func TestResolve_NFCNormalization(t *testing.T) {
	dir := t.TempDir()
	// "é" written decomposed (e + combining acute), looked up precomposed.
	writeFile(t, filepath.Join(dir, "sub", "café.md"))

	_, ok := Resolve("café.md", dir)
	require.True(t, ok)
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "root.md"))

	abs, err := ResolveRoot(filepath.Join(dir, "root.md"))
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))

	_, err = ResolveRoot(filepath.Join(dir, "nope.md"))
	require.ErrorIs(t, err, ErrRootNotFound)

	_, err = ResolveRoot(dir)
	require.ErrorIs(t, err, ErrRootNotFound)
}

func TestNormalizePath_Idempotent(t *testing.T) {
	p := NormalizePath("some/relative/../path.md")
	require.Equal(t, p, NormalizePath(p))
	require.True(t, filepath.IsAbs(p))
}

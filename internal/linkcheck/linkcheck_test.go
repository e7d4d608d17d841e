package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestVerifyDir_CleanExport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes", "a.md"), "x")
	writeFile(t, filepath.Join(dir, "notes", "a.md.html"),
		`<html><body><a href="./a.md.html#top">self</a><img src="./pic.png"></body></html>`)
	writeFile(t, filepath.Join(dir, "notes", "pic.png"), "img")

	problems, err := VerifyDir(dir)
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestVerifyDir_DanglingReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes", "a.md.html"),
		`<html><body><a href="./missing.md.html">gone</a></body></html>`)

	problems, err := VerifyDir(dir)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Equal(t, "./missing.md.html", problems[0].Ref)
	require.True(t, strings.HasSuffix(problems[0].Page, "a.md.html"))
}

func TestVerifyDir_ExternalAndFragmentRefsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.html"),
		`<html><head><script src="https://cdn.example.com/x.js"></script></head>`+
			`<body><a href="https://example.com">out</a><a href="#here">frag</a></body></html>`)

	problems, err := VerifyDir(dir)
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestVerifyDir_SidebarIframe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes", "a.md.html"),
		`<html><body><iframe src="../treeview.html"></iframe></body></html>`)

	problems, err := VerifyDir(dir)
	require.NoError(t, err)
	require.Len(t, problems, 1)

	writeFile(t, filepath.Join(dir, "treeview.html"), "<html></html>")
	problems, err = VerifyDir(dir)
	require.NoError(t, err)
	require.Empty(t, problems)
}

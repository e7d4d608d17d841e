package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/noteport/internal/config"
)

func TestExportRootFor(t *testing.T) {
	got := ExportRootFor("/tmp/export", "/vault/sub/My Note.md")
	require.Equal(t, filepath.Join("/tmp/export", "My Note"), got)
}

func TestResolveVault_AppendsSuffixAndResolves(t *testing.T) {
	dir := t.TempDir()
	notePath := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(notePath, []byte("hello"), 0o600))

	cfg := config.Default()
	root, cleanup, err := ResolveVault(cfg, filepath.Join(dir, "note"))
	require.NoError(t, err)
	defer cleanup()
	require.Equal(t, notePath, root)
}

func TestResolveVault_MissingRootIsFatal(t *testing.T) {
	cfg := config.Default()
	_, _, err := ResolveVault(cfg, filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, splitLines("a\nb\r\nc"))
	require.Nil(t, splitLines(""))
}

func TestRunExport_EndToEnd(t *testing.T) {
	vaultDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vaultDir, "main.md"),
		[]byte("# Main\n[[other]]\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(vaultDir, "other.md"),
		[]byte("# Other\n"), 0o600))

	cfg := config.Default()
	cfg.Export.BaseDir = t.TempDir()
	cfg.History.Enabled = false

	res, err := RunExport(t.Context(), cfg, filepath.Join(vaultDir, "main.md"))
	require.NoError(t, err)
	require.True(t, res.Report.Matches())
	require.Equal(t, 2, res.Report.Copied)

	require.FileExists(t, filepath.Join(res.OutputRoot, "notes", "main.md"))
	require.FileExists(t, filepath.Join(res.OutputRoot, "notes", "other.md"))
	require.FileExists(t, filepath.Join(res.OutputRoot, "notes", "main.md.html"))
	require.FileExists(t, filepath.Join(res.OutputRoot, "treeview.html"))
	require.FileExists(t, filepath.Join(res.OutputRoot, "index.html"))
}

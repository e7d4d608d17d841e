package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndCleanup(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Create())

	dir := m.Path()
	require.True(t, strings.Contains(filepath.Base(dir), "noteport-"))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	m.Cleanup()
	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestManager_CleanupWithoutCreate(t *testing.T) {
	m := NewManager("")
	m.Cleanup() // must be a no-op
}

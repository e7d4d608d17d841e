package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelperKeyNames(t *testing.T) {
	require.Equal(t, KeyPath, Path("/tmp/x").Key)
	require.Equal(t, "/tmp/x", Path("/tmp/x").Value.String())
	require.Equal(t, KeyFile, File("a.md").Key)
	require.Equal(t, KeyTarget, Target("b.md").Key)
	require.Equal(t, KeyCount, Count(3).Key)
	require.Equal(t, int64(3), Count(3).Value.Int64())
}

func TestErrorAttr(t *testing.T) {
	require.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	require.Equal(t, "", Error(nil).Value.String())
}

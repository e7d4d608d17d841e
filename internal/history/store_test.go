package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_AppendAndRecent(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	id1, err := s.Append(ctx, Run{
		Root:      "/vault/root.md",
		Depth:     "unbounded",
		HTML:      true,
		Expected:  3,
		Copied:    3,
		Duration:  125 * time.Millisecond,
		StartedAt: time.Unix(1000, 0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	_, err = s.Append(ctx, Run{
		Root:      "/vault/other.md",
		Depth:     "2",
		Expected:  5,
		Copied:    4,
		StartedAt: time.Unix(2000, 0),
	})
	require.NoError(t, err)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	require.Equal(t, "/vault/other.md", runs[0].Root)
	require.Equal(t, "2", runs[0].Depth)
	require.False(t, runs[0].HTML)
	require.Equal(t, 5, runs[0].Expected)
	require.Equal(t, 4, runs[0].Copied)

	require.Equal(t, id1, runs[1].ID)
	require.True(t, runs[1].HTML)
	require.Equal(t, 125*time.Millisecond, runs[1].Duration)
}

func TestStore_RecentLimit(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.Append(ctx, Run{Root: "/vault/root.md", Depth: "0", StartedAt: time.Unix(int64(i), 0)})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

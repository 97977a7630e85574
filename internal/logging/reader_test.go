package logging

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent Write and String.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// writeProvisionLog seeds a droplet's log with the given lines.
func writeProvisionLog(t *testing.T, pm *PathManager, dropletID int, lines ...string) {
	t.Helper()
	_, err := pm.EnsureProvisionDir()
	require.NoError(t, err)
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(pm.ProvisionLogPath(dropletID), []byte(content), 0o644))
}

func TestReader_ReadAll(t *testing.T) {
	pm := NewPathManager(t.TempDir())
	r := NewReader(pm)

	writeProvisionLog(t, pm, 42, "line 1", "line 2", "line 3")

	lines, err := r.ReadAll(42)
	require.NoError(t, err)
	assert.Equal(t, []string{"line 1", "line 2", "line 3"}, lines)
}

func TestReader_ReadAll_MissingLog(t *testing.T) {
	r := NewReader(NewPathManager(t.TempDir()))

	_, err := r.ReadAll(42)
	assert.Error(t, err)
}

func TestReader_ReadLastN(t *testing.T) {
	pm := NewPathManager(t.TempDir())
	r := NewReader(pm)

	writeProvisionLog(t, pm, 42, "line 1", "line 2", "line 3", "line 4", "line 5")

	t.Run("fewer lines than available", func(t *testing.T) {
		lines, err := r.ReadLastN(42, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"line 4", "line 5"}, lines)
	})

	t.Run("more lines than available", func(t *testing.T) {
		lines, err := r.ReadLastN(42, 10)
		require.NoError(t, err)
		assert.Len(t, lines, 5)
	})

	t.Run("zero falls back to default", func(t *testing.T) {
		lines, err := r.ReadLastN(42, 0)
		require.NoError(t, err)
		assert.Len(t, lines, 5)
	})
}

func TestReader_Follow(t *testing.T) {
	pm := NewPathManager(t.TempDir())
	r := NewReader(pm)

	writeProvisionLog(t, pm, 42, "before follow")
	path := pm.ProvisionLogPath(42)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- r.Follow(ctx, 42, out, 10*time.Millisecond)
	}()

	// Append after the follower has started.
	require.Eventually(t, func() bool {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		_, err = f.WriteString("after follow\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())
		return strings.Contains(out.String(), "after follow")
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// Lines written before Follow started are skipped.
	assert.NotContains(t, out.String(), "before follow")
}

func TestReader_FollowWithHistory(t *testing.T) {
	pm := NewPathManager(t.TempDir())
	r := NewReader(pm)

	writeProvisionLog(t, pm, 42, "line 1", "line 2", "line 3")

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- r.FollowWithHistory(ctx, 42, out, 2, 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "line 3")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.NotContains(t, out.String(), "line 1")
	assert.Contains(t, out.String(), "line 2")
}

package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
)

func TestFileWriter_AppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai", "JOURNAL.md")
	w := NewFileWriter(path)

	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, w.Append(context.Background(), domain.JournalEntry{
		CommitHash:      "abc1234",
		TaskDescription: "Add dark mode",
		Timestamp:       ts,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n## 2026-03-01T12:30:00Z\nTask: Add dark mode\nCommit: abc1234\n", string(data))
}

func TestFileWriter_AppendKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "JOURNAL.md")
	require.NoError(t, os.WriteFile(path, []byte("# Journal\n"), 0644))
	w := NewFileWriter(path)

	for i := 0; i < 2; i++ {
		require.NoError(t, w.Append(context.Background(), domain.JournalEntry{CommitHash: fmt.Sprint(i), Timestamp: time.Now()}))
	}

	count, err := CountEntries(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Journal\n\n## ")
}

func TestFileWriter_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "JOURNAL.md")
	w := NewFileWriter(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, w.Append(context.Background(), domain.JournalEntry{CommitHash: fmt.Sprint(i), Timestamp: time.Now()}))
		}(i)
	}
	wg.Wait()

	count, err := CountEntries(path)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestFileWriter_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "JOURNAL.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileWriter(path).Append(ctx, domain.JournalEntry{})
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCountEntries_MissingFile(t *testing.T) {
	count, err := CountEntries(filepath.Join(t.TempDir(), "nope.md"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepositoryForPath(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestRun(id string, started time.Time) *domain.Run {
	return &domain.Run{
		Branch:          "ai/add-dark-mode",
		ID:              id,
		Mode:            domain.RunModeAgent,
		Model:           "gpt-4o",
		Outcome:         domain.RunOutcomeRunning,
		RepoRoot:        "/tmp/repo",
		StartedAt:       started,
		TaskDescription: "Add dark mode",
		TaskID:          "task-1",
	}
}

func TestSQLiteRepository_CreateAndGetRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.CreateRun(ctx, newTestRun("run-1", started)))

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "ai/add-dark-mode", got.Branch)
	assert.Equal(t, domain.RunModeAgent, got.Mode)
	assert.Equal(t, domain.RunOutcomeRunning, got.Outcome)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Nil(t, got.FinishedAt)
	assert.Empty(t, got.ToolCalls)
}

func TestSQLiteRepository_GetRunNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestSQLiteRepository_GetRunByPrefix(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.CreateRun(ctx, newTestRun("3f2a9c10-old", base)))
	require.NoError(t, repo.CreateRun(ctx, newTestRun("3f2a9c10-new", base.Add(time.Hour))))
	require.NoError(t, repo.CreateRun(ctx, newTestRun("77aa0000-other", base)))

	got, err := repo.GetRun(ctx, "3f2a9c10")
	require.NoError(t, err)
	assert.Equal(t, "3f2a9c10-new", got.ID)

	got, err = repo.GetRun(ctx, "77aa")
	require.NoError(t, err)
	assert.Equal(t, "77aa0000-other", got.ID)
}

func TestSQLiteRepository_UpdateRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := newTestRun("run-1", time.Now().UTC())
	require.NoError(t, repo.CreateRun(ctx, run))

	finished := run.StartedAt.Add(90 * time.Second)
	run.CommitHash = "abc1234"
	run.FinishedAt = &finished
	run.Iterations = 7
	run.Outcome = domain.RunOutcomeCommitted
	require.NoError(t, repo.UpdateRun(ctx, run))

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "abc1234", got.CommitHash)
	assert.Equal(t, 7, got.Iterations)
	assert.Equal(t, domain.RunOutcomeCommitted, got.Outcome)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, 90*time.Second, got.Duration())
}

func TestSQLiteRepository_UpdateMissingRun(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateRun(context.Background(), newTestRun("ghost", time.Now()))
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestSQLiteRepository_ToolCallsOrdered(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateRun(ctx, newTestRun("run-1", time.Now().UTC())))

	for _, seq := range []int{2, 1, 3} {
		require.NoError(t, repo.AddToolCall(ctx, &domain.ToolCallRecord{
			Arguments: `{"path":"."}`,
			CreatedAt: time.Now().UTC(),
			Duration:  1500 * time.Millisecond,
			Name:      "list_directory",
			Result:    `{"entries":[]}`,
			RunID:     "run-1",
			Sequence:  seq,
		}))
	}

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got.ToolCalls, 3)
	for i, tc := range got.ToolCalls {
		assert.Equal(t, i+1, tc.Sequence)
		assert.Equal(t, 1500*time.Millisecond, tc.Duration)
	}
}

func TestSQLiteRepository_ListRunsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.CreateRun(ctx, newTestRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[2].ID)

	limited, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteRepository_CreateRunRequiresID(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.CreateRun(context.Background(), newTestRun("", time.Now()))
	assert.Error(t, err)
}

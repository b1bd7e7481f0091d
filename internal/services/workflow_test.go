package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	gitadapter "github.com/renato0307/obreiro/internal/adapters/git"
	"github.com/renato0307/obreiro/internal/domain"
	portsmocks "github.com/renato0307/obreiro/internal/ports/mocks"
	"github.com/renato0307/obreiro/internal/testutil"
)

func TestWorkflow_BranchName(t *testing.T) {
	p := newProject(t, "- [ ] Add login\n")
	assert.Equal(t, "ai/add-login-page", p.workflow.BranchName("Add login page!"))
}

func TestWorkflow_EnsureBranch(t *testing.T) {
	ctx := context.Background()
	p := newProject(t, "- [ ] Add login\n")

	require.NoError(t, p.workflow.EnsureBranch(ctx, "ai/add-login"))
	assert.Equal(t, "ai/add-login", p.repo.Git("rev-parse", "--abbrev-ref", "HEAD"))

	// Already on it
	require.NoError(t, p.workflow.EnsureBranch(ctx, "ai/add-login"))

	p.repo.Git("checkout", "main")
	require.NoError(t, p.workflow.EnsureBranch(ctx, "ai/add-login"))
	assert.Equal(t, "ai/add-login", p.repo.Git("rev-parse", "--abbrev-ref", "HEAD"))
}

func TestWorkflow_FinalizeTwiceWithoutChanges(t *testing.T) {
	ctx := context.Background()
	p := newProject(t, "- [ ] Write notes\n")
	session := &domain.SessionContext{RepoRoot: p.repo.Path, Task: &domain.Task{Description: "Write notes"}}

	p.repo.WriteFile("notes.txt", "hello\n")

	first, err := p.workflow.Finalize(ctx, session, "feat: notes", false)
	require.NoError(t, err)
	assert.True(t, first.Committed)
	assert.NotEmpty(t, first.CommitHash)
	assert.Equal(t, 1, p.journalEntries(t))
	assert.Equal(t, "3", p.repo.CommitCount())

	second, err := p.workflow.Finalize(ctx, session, "feat: notes", false)
	require.NoError(t, err)
	assert.False(t, second.Committed)
	assert.Empty(t, second.CommitHash)
	assert.Equal(t, 1, p.journalEntries(t), "no new journal entry without a commit")
	assert.Equal(t, "3", p.repo.CommitCount())
}

func TestWorkflow_FinalizeJournalRecordsTask(t *testing.T) {
	ctx := context.Background()
	p := newProject(t, "- [ ] Write notes\n")
	session := &domain.SessionContext{RepoRoot: p.repo.Path, Task: &domain.Task{Description: "Write notes"}}

	p.repo.WriteFile("notes.txt", "hello\n")
	result, err := p.workflow.Finalize(ctx, session, "feat: notes", false)
	require.NoError(t, err)

	content := p.repo.ReadFile(p.layout.JournalFile)
	assert.Contains(t, content, "Task: Write notes\n")
	assert.Contains(t, content, "Commit: "+result.CommitHash+"\n")
}

func TestWorkflow_FinalizePush(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestRepoWithOrigin(t)
	gitRepo := gitadapter.NewCLIRepository(repo.Path)
	journalWriter := portsmocks.NewMockJournalWriter(t)
	journalWriter.EXPECT().Append(mock.Anything, mock.Anything).Return(nil)

	workflow := NewWorkflowService(gitRepo, journalWriter, "ai/", "ai/JOURNAL.md")
	repo.WriteFile("feature.txt", "feature\n")

	result, err := workflow.Finalize(ctx, &domain.SessionContext{RepoRoot: repo.Path}, "feat: push", true)
	require.NoError(t, err)
	assert.True(t, result.Pushed)
	assert.Equal(t, repo.Git("rev-parse", "HEAD"), repo.Git("rev-parse", "origin/main"))
}

func TestWorkflow_FinalizeJournalFailure(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestRepo(t)
	journalWriter := portsmocks.NewMockJournalWriter(t)
	journalWriter.EXPECT().Append(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	workflow := NewWorkflowService(gitadapter.NewCLIRepository(repo.Path), journalWriter, "ai/", "ai/JOURNAL.md")
	repo.WriteFile("feature.txt", "feature\n")

	_, err := workflow.Finalize(ctx, &domain.SessionContext{RepoRoot: repo.Path}, "feat: x", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal update failed")
	assert.Equal(t, "2", repo.CommitCount(), "the commit itself stays")

	var finalizeErr *domain.FinalizeError
	require.True(t, errors.As(err, &finalizeErr))
	assert.NotEmpty(t, finalizeErr.CommitHash)
}

func TestWorkflow_FinalizePushWithoutRemote(t *testing.T) {
	ctx := context.Background()
	p := newProject(t, "- [ ] Task\n")
	p.repo.WriteFile("feature.txt", "feature\n")

	_, err := p.workflow.Finalize(ctx, &domain.SessionContext{RepoRoot: p.repo.Path}, "feat: x", true)

	var finalizeErr *domain.FinalizeError
	require.True(t, errors.As(err, &finalizeErr))
	var gitErr *domain.GitError
	assert.True(t, errors.As(err, &gitErr))
	assert.Contains(t, err.Error(), "push failed")
	assert.True(t, strings.HasPrefix(p.repo.Git("rev-parse", "HEAD"), finalizeErr.CommitHash))
	assert.Equal(t, 1, p.journalEntries(t))
}

func TestWorkflow_FinalizeSessionPushOverridesArgument(t *testing.T) {
	ctx := context.Background()
	p := newProjectWithOrigin(t, "- [ ] Task\n")
	p.repo.WriteFile("feature.txt", "feature\n")

	session := &domain.SessionContext{Push: true, RepoRoot: p.repo.Path}
	result, err := p.workflow.Finalize(ctx, session, "feat: x", false)
	require.NoError(t, err)
	assert.True(t, result.Pushed)
	assert.Equal(t, p.repo.Git("rev-parse", "HEAD"), p.repo.Git("rev-parse", "origin/main"))
}

func TestWorkflow_HasChangesIgnoresJournal(t *testing.T) {
	ctx := context.Background()
	p := newProject(t, "- [ ] Task\n")

	p.repo.WriteFile(p.layout.JournalFile, "\n## entry\n")
	dirty, err := p.workflow.HasChanges(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	p.repo.WriteFile("src/new.go", "package src\n")
	dirty, err = p.workflow.HasChanges(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestWorkflow_Cleanup(t *testing.T) {
	ctx := context.Background()
	p := newProject(t, "- [ ] Task\n")
	p.repo.CreateBranch("ai/one")
	p.repo.CreateBranch("ai/two")
	p.repo.CreateBranch("feature/keep")
	p.repo.Git("checkout", "ai/two")

	t.Run("dry run deletes nothing", func(t *testing.T) {
		results, err := p.workflow.Cleanup(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, []domain.BranchCleanupResult{
			{Action: domain.CleanupWouldDelete, Branch: "ai/one"},
			{Action: domain.CleanupSkipped, Branch: "ai/two", Reason: "current branch"},
		}, results)

		branches, err := p.workflow.Branches(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"ai/one", "ai/two"}, branches)
	})

	t.Run("deletes all but the current branch", func(t *testing.T) {
		results, err := p.workflow.Cleanup(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, []domain.BranchCleanupResult{
			{Action: domain.CleanupDeleted, Branch: "ai/one"},
			{Action: domain.CleanupSkipped, Branch: "ai/two", Reason: "current branch"},
		}, results)

		branches, err := p.workflow.Branches(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"ai/two"}, branches)
		assert.NotEmpty(t, p.repo.Git("branch", "--list", "feature/keep"))
	})
}

func TestWorkflow_BranchesRequiresPrefix(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	workflow := NewWorkflowService(gitadapter.NewCLIRepository(repo.Path), nil, "", "ai/JOURNAL.md")

	_, err := workflow.Branches(context.Background())
	assert.Error(t, err)
}

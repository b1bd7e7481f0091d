package git

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/testutil"
)

func TestParseStatus(t *testing.T) {
	porcelain := " M src/app.ts\nA  src/new.ts\nR  old.txt -> new.txt\n?? notes.md\n"

	uncommitted, untracked := parseStatus(porcelain)

	assert.Equal(t, []string{"src/app.ts", "src/new.ts", "new.txt"}, uncommitted)
	assert.Equal(t, []string{"notes.md"}, untracked)
}

func TestCLIRepository_BranchLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestRepo(t)
	git := NewCLIRepository(repo.Path)

	current, err := git.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", current)

	exists, err := git.BranchExists(ctx, "ai/feature")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, git.CreateBranch(ctx, "ai/feature"))
	current, err = git.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ai/feature", current)

	exists, err = git.BranchExists(ctx, "ai/feature")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, git.CheckoutBranch(ctx, "main"))
	repo.CreateBranch("ai/other")
	repo.CreateBranch("feature/x")

	branches, err := git.ListBranches(ctx, "ai/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"ai/feature", "ai/other"}, branches)

	require.NoError(t, git.DeleteBranch(ctx, "ai/other", true))
	branches, err = git.ListBranches(ctx, "ai/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"ai/feature"}, branches)
}

func TestCLIRepository_CreateBranchRejectsInvalidName(t *testing.T) {
	repo := testutil.NewTestRepo(t)

	err := NewCLIRepository(repo.Path).CreateBranch(context.Background(), "bad name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid branch name")
}

func TestCLIRepository_StatusAndCommit(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestRepo(t)
	git := NewCLIRepository(repo.Path)

	status, err := git.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Clean)
	assert.Equal(t, "main", status.Branch)

	repo.WriteFile("README.md", "# Changed\n")
	repo.WriteFile("new.txt", "hello\n")

	status, err = git.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Clean)
	assert.Equal(t, []string{"README.md"}, status.Uncommitted)
	assert.Equal(t, []string{"new.txt"}, status.Untracked)

	short, err := git.StatusShort(ctx)
	require.NoError(t, err)
	assert.Contains(t, short, "README.md")
	assert.Contains(t, short, "?? new.txt")

	require.NoError(t, git.StageAll(ctx))
	hash, err := git.Commit(ctx, "feat: change things")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.Equal(t, hash, repo.Git("rev-parse", "--short", "HEAD"))
	assert.Equal(t, "feat: change things", repo.Git("log", "-1", "--format=%s"))

	short, err = git.StatusShort(ctx)
	require.NoError(t, err)
	assert.Empty(t, short)
}

func TestCLIRepository_CommitWithNothingStagedFails(t *testing.T) {
	repo := testutil.NewTestRepo(t)

	_, err := NewCLIRepository(repo.Path).Commit(context.Background(), "empty")

	var gitErr *domain.GitError
	require.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "commit", gitErr.Op)
}

func TestCLIRepository_Push(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestRepoWithOrigin(t)
	git := NewCLIRepository(repo.Path)

	require.NoError(t, git.CreateBranch(ctx, "ai/pushed"))
	repo.WriteFile("pushed.txt", "x\n")
	require.NoError(t, git.StageAll(ctx))
	hash, err := git.Commit(ctx, "push me")
	require.NoError(t, err)

	require.NoError(t, git.Push(ctx))

	remoteHash := testutil.RunGitCommand(t, repo.BareRepoPath, "rev-parse", "--short", "ai/pushed")
	assert.Equal(t, hash, remoteHash)
}

func TestCLIRepository_PushWithoutRemoteFails(t *testing.T) {
	repo := testutil.NewTestRepo(t)

	err := NewCLIRepository(repo.Path).Push(context.Background())

	var gitErr *domain.GitError
	require.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "push", gitErr.Op)
}

func TestRepoRoot(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	sub := repo.WriteFile("deep/nested/file.txt", "x")

	root, err := RepoRoot(context.Background(), filepath.Dir(sub))
	require.NoError(t, err)
	assert.Equal(t, repo.Git("rev-parse", "--show-toplevel"), root)

	_, err = RepoRoot(context.Background(), t.TempDir())
	assert.Error(t, err)
}

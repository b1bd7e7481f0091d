package services

import (
	"testing"

	gitadapter "github.com/renato0307/obreiro/internal/adapters/git"
	"github.com/renato0307/obreiro/internal/adapters/journal"
	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/testutil"
)

// project is a real git repository laid out the way obreiro expects
type project struct {
	backlog  *BacklogService
	cfg      *domain.AgentConfig
	git      *gitadapter.CLIRepository
	layout   config.ProjectLayout
	repo     *testutil.TestRepo
	workflow *WorkflowService
}

// newProject creates a repository whose committed backlog holds tasks
func newProject(t *testing.T, tasks string) *project {
	t.Helper()
	return newProjectIn(t, testutil.NewTestRepo(t), tasks)
}

// newProjectWithOrigin is newProject on a clone of a bare origin
func newProjectWithOrigin(t *testing.T, tasks string) *project {
	t.Helper()
	return newProjectIn(t, testutil.NewTestRepoWithOrigin(t), tasks)
}

func newProjectIn(t *testing.T, repo *testutil.TestRepo, tasks string) *project {
	t.Helper()

	repo.WriteFile(config.DefaultTasksFile, tasks)
	repo.CommitAll("Add backlog")

	layout := config.NewProjectLayout(repo.Path)
	cfg := &domain.AgentConfig{Commands: map[string]string{}, Retry: 1}
	cfg.ApplyDefaults()

	gitRepo := gitadapter.NewCLIRepository(repo.Path)
	return &project{
		backlog:  NewBacklogService(layout.Abs(layout.TasksFile)),
		cfg:      cfg,
		git:      gitRepo,
		layout:   layout,
		repo:     repo,
		workflow: NewWorkflowService(gitRepo, journal.NewFileWriter(layout.Abs(layout.JournalFile)), cfg.BranchPrefix, layout.JournalFile),
	}
}

func (p *project) journalEntries(t *testing.T) int {
	t.Helper()
	n, err := journal.CountEntries(p.layout.Abs(p.layout.JournalFile))
	if err != nil {
		t.Fatalf("Failed to count journal entries: %v", err)
	}
	return n
}

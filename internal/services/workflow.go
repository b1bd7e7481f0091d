package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// WorkflowService owns the branch lifecycle and the commit/journal/push sequence of a task
type WorkflowService struct {
	branchPrefix string
	gitRepo      ports.GitRepository
	journal      ports.JournalWriter
	journalPath  string
	now          func() time.Time
}

// NewWorkflowService creates a new WorkflowService. journalPath is the repository-relative
// journal file; its own pending changes never count as work to commit.
func NewWorkflowService(gitRepo ports.GitRepository, journal ports.JournalWriter, branchPrefix, journalPath string) *WorkflowService {
	return &WorkflowService{
		branchPrefix: branchPrefix,
		gitRepo:      gitRepo,
		journal:      journal,
		journalPath:  filepath.ToSlash(journalPath),
		now:          time.Now,
	}
}

// BranchName derives the task branch: prefix followed by the description slug
func (s *WorkflowService) BranchName(description string) string {
	return s.branchPrefix + s.gitRepo.SanitizeBranchName(description)
}

// EnsureBranch makes name the current branch, creating it when needed
func (s *WorkflowService) EnsureBranch(ctx context.Context, name string) error {
	current, err := s.gitRepo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current branch: %w", err)
	}
	if current == name {
		logging.Logger.Debug("Already on task branch", "branch", name)
		return nil
	}

	exists, err := s.gitRepo.BranchExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check branch %s: %w", name, err)
	}
	if exists {
		return s.gitRepo.CheckoutBranch(ctx, name)
	}
	return s.gitRepo.CreateBranch(ctx, name)
}

// Finalize stages everything, commits, appends a journal entry and optionally pushes.
// A clean tree yields {committed:false} and no commit. Every failure is a
// *domain.FinalizeError carrying the commit hash when the commit already exists.
func (s *WorkflowService) Finalize(ctx context.Context, session *domain.SessionContext, message string, push bool) (*domain.FinalizeResult, error) {
	dirty, err := s.HasChanges(ctx)
	if err != nil {
		return nil, &domain.FinalizeError{Err: err}
	}
	if !dirty {
		logging.Logger.Info("Nothing to finalize")
		return &domain.FinalizeResult{Committed: false, Message: "No changes to commit"}, nil
	}

	if err := s.gitRepo.StageAll(ctx); err != nil {
		return nil, &domain.FinalizeError{Err: fmt.Errorf("failed to stage changes: %w", err)}
	}
	hash, err := s.gitRepo.Commit(ctx, message)
	if err != nil {
		return nil, &domain.FinalizeError{Err: fmt.Errorf("failed to commit: %w", err)}
	}
	logging.Logger.Info("Committed task changes", "commit", hash, "message", message)

	entry := domain.JournalEntry{
		CommitHash:      hash,
		TaskDescription: session.TaskDescription(),
		Timestamp:       s.now(),
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		return nil, &domain.FinalizeError{CommitHash: hash, Err: fmt.Errorf("journal update failed: %w", err)}
	}

	result := &domain.FinalizeResult{CommitHash: hash, Committed: true}
	if push || (session != nil && session.Push) {
		if err := s.gitRepo.Push(ctx); err != nil {
			return nil, &domain.FinalizeError{CommitHash: hash, Err: fmt.Errorf("push failed: %w", err)}
		}
		result.Pushed = true
	}
	return result, nil
}

// HasChanges reports whether the working tree has changes other than the journal
func (s *WorkflowService) HasChanges(ctx context.Context) (bool, error) {
	status, err := s.gitRepo.Status(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	for _, paths := range [][]string{status.Uncommitted, status.Untracked} {
		for _, p := range paths {
			if p != s.journalPath {
				return true, nil
			}
		}
	}
	return false, nil
}

// Branches lists the local branches carrying the configured prefix
func (s *WorkflowService) Branches(ctx context.Context) ([]string, error) {
	if s.branchPrefix == "" {
		return nil, fmt.Errorf("branch prefix is empty")
	}
	return s.gitRepo.ListBranches(ctx, s.branchPrefix+"*")
}

// Cleanup deletes every prefixed branch except the current one. With dryRun nothing is deleted.
func (s *WorkflowService) Cleanup(ctx context.Context, dryRun bool) ([]domain.BranchCleanupResult, error) {
	branches, err := s.Branches(ctx)
	if err != nil {
		return nil, err
	}
	current, err := s.gitRepo.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current branch: %w", err)
	}

	results := make([]domain.BranchCleanupResult, 0, len(branches))
	for _, branch := range branches {
		switch {
		case branch == current:
			results = append(results, domain.BranchCleanupResult{Action: domain.CleanupSkipped, Branch: branch, Reason: "current branch"})
		case dryRun:
			results = append(results, domain.BranchCleanupResult{Action: domain.CleanupWouldDelete, Branch: branch})
		default:
			if err := s.gitRepo.DeleteBranch(ctx, branch, true); err != nil {
				logging.Logger.Warn("Failed to delete branch", "branch", branch, "error", err)
				results = append(results, domain.BranchCleanupResult{Action: domain.CleanupFailed, Branch: branch, Reason: err.Error()})
				continue
			}
			results = append(results, domain.BranchCleanupResult{Action: domain.CleanupDeleted, Branch: branch})
		}
	}
	return results, nil
}

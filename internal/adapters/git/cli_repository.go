package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// CLIRepository implements ports.GitRepository using the local git binary
type CLIRepository struct {
	dir string
}

// Verify interface compliance at compile time
var _ ports.GitRepository = (*CLIRepository)(nil)

// NewCLIRepository creates a CLIRepository operating on the repository at dir
func NewCLIRepository(dir string) *CLIRepository {
	return &CLIRepository{dir: dir}
}

// Dir returns the repository directory
func (r *CLIRepository) Dir() string {
	return r.dir
}

// BranchNamer methods

// SanitizeBranchName implements BranchNamer.SanitizeBranchName
func (r *CLIRepository) SanitizeBranchName(text string) string {
	return Slugify(text)
}

// ValidateBranchName implements BranchNamer.ValidateBranchName
func (r *CLIRepository) ValidateBranchName(name string) error {
	return ValidateBranchName(name)
}

// ValidateBranchPrefix implements BranchNamer.ValidateBranchPrefix
func (r *CLIRepository) ValidateBranchPrefix(prefix string) error {
	return ValidateBranchPrefix(prefix)
}

// BranchManager methods

// BranchExists implements BranchManager.BranchExists
func (r *CLIRepository) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, err := runGit(ctx, r.dir, "show-ref", "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

// CheckoutBranch implements BranchManager.CheckoutBranch
func (r *CLIRepository) CheckoutBranch(ctx context.Context, branch string) error {
	logging.Logger.Info("Checking out branch", "branch", branch)
	_, err := runGit(ctx, r.dir, "checkout", "checkout", branch)
	return err
}

// CreateBranch implements BranchManager.CreateBranch; the new branch is checked out
func (r *CLIRepository) CreateBranch(ctx context.Context, branch string) error {
	if err := validateBranchName(branch); err != nil {
		return fmt.Errorf("invalid branch name %q: %w", branch, err)
	}
	logging.Logger.Info("Creating branch", "branch", branch)
	_, err := runGit(ctx, r.dir, "checkout", "checkout", "-b", branch)
	return err
}

// CurrentBranch implements BranchManager.CurrentBranch
func (r *CLIRepository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := gitOutput(ctx, r.dir, "branch", "branch", "--show-current")
	if err != nil {
		return "", err
	}
	if branch := strings.TrimSpace(out); branch != "" {
		return branch, nil
	}

	// Detached HEAD
	out, err = gitOutput(ctx, r.dir, "rev-parse", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DeleteBranch implements BranchManager.DeleteBranch
func (r *CLIRepository) DeleteBranch(ctx context.Context, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	logging.Logger.Info("Deleting branch", "branch", branch, "force", force)
	_, err := runGit(ctx, r.dir, "branch", "branch", flag, branch)
	return err
}

// ListBranches implements BranchManager.ListBranches; an empty pattern lists every branch
func (r *CLIRepository) ListBranches(ctx context.Context, pattern string) ([]string, error) {
	args := []string{"branch", "--list", "--format=%(refname:short)"}
	if pattern != "" {
		args = append(args, pattern)
	}
	out, err := gitOutput(ctx, r.dir, "branch", args...)
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// WorkingTree methods

// Commit implements WorkingTree.Commit and returns the short hash of the new commit
func (r *CLIRepository) Commit(ctx context.Context, message string) (string, error) {
	if _, err := runGit(ctx, r.dir, "commit", "commit", "-m", message); err != nil {
		return "", err
	}
	return r.HeadHash(ctx)
}

// HeadHash implements WorkingTree.HeadHash
func (r *CLIRepository) HeadHash(ctx context.Context) (string, error) {
	out, err := gitOutput(ctx, r.dir, "rev-parse", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StageAll implements WorkingTree.StageAll
func (r *CLIRepository) StageAll(ctx context.Context) error {
	_, err := runGit(ctx, r.dir, "add", "add", "-A")
	return err
}

// Status implements WorkingTree.Status
func (r *CLIRepository) Status(ctx context.Context) (*domain.GitStatus, error) {
	branch, err := r.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	out, err := gitOutput(ctx, r.dir, "status", "status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	uncommitted, untracked := parseStatus(out)
	return &domain.GitStatus{
		Branch:      branch,
		Clean:       len(uncommitted) == 0 && len(untracked) == 0,
		Uncommitted: uncommitted,
		Untracked:   untracked,
	}, nil
}

// StatusShort implements WorkingTree.StatusShort
func (r *CLIRepository) StatusShort(ctx context.Context) (string, error) {
	out, err := gitOutput(ctx, r.dir, "status", "status", "--short")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// RemotePusher methods

// Push implements RemotePusher.Push, setting the upstream for new branches
func (r *CLIRepository) Push(ctx context.Context) error {
	logging.Logger.Info("Pushing current branch")
	_, err := runGit(ctx, r.dir, "push", "push", "--set-upstream", "origin", "HEAD")
	return err
}

package ports

import (
	"context"

	"github.com/renato0307/obreiro/internal/domain"
)

// BranchNamer derives and checks branch names
type BranchNamer interface {
	SanitizeBranchName(text string) string
	ValidateBranchName(name string) error
	ValidateBranchPrefix(prefix string) error
}

// BranchManager handles local branch lifecycle
type BranchManager interface {
	BranchNamer
	BranchExists(ctx context.Context, branch string) (bool, error)
	CheckoutBranch(ctx context.Context, branch string) error
	CreateBranch(ctx context.Context, branch string) error
	CurrentBranch(ctx context.Context) (string, error)
	DeleteBranch(ctx context.Context, branch string, force bool) error
	ListBranches(ctx context.Context, pattern string) ([]string, error)
}

// WorkingTree inspects and records working tree changes
type WorkingTree interface {
	Commit(ctx context.Context, message string) (string, error)
	HeadHash(ctx context.Context) (string, error)
	StageAll(ctx context.Context) error
	Status(ctx context.Context) (*domain.GitStatus, error)
	StatusShort(ctx context.Context) (string, error)
}

// RemotePusher publishes commits
type RemotePusher interface {
	Push(ctx context.Context) error
}

// PatchApplier applies unified diffs to the working tree.
// strip is the number of leading path components to drop, as in git apply -p.
type PatchApplier interface {
	ApplyPatch(ctx context.Context, patch string, strip int) error
	PatchPaths(ctx context.Context, patch string, strip int) ([]string, error)
}

// GitRepository is the composite interface
type GitRepository interface {
	BranchManager
	PatchApplier
	RemotePusher
	WorkingTree
}

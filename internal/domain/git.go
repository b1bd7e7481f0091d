package domain

// GitStatus is a parsed view of the working tree
type GitStatus struct {
	Branch      string   `json:"branch"`
	Clean       bool     `json:"clean"`
	Uncommitted []string `json:"uncommitted"`
	Untracked   []string `json:"untracked"`
}

// FinalizeResult reports what finalizing a task produced
type FinalizeResult struct {
	CommitHash string `json:"commitHash,omitempty"`
	Committed  bool   `json:"committed"`
	Message    string `json:"message,omitempty"`
	Pushed     bool   `json:"pushed,omitempty"`
}

// CleanupAction is what happened to one branch during cleanup
type CleanupAction string

const (
	CleanupDeleted     CleanupAction = "deleted"
	CleanupFailed      CleanupAction = "failed"
	CleanupSkipped     CleanupAction = "skipped"
	CleanupWouldDelete CleanupAction = "would_delete"
)

// BranchCleanupResult is the per-branch outcome of a cleanup
type BranchCleanupResult struct {
	Action CleanupAction `json:"action"`
	Branch string        `json:"branch"`
	Reason string        `json:"reason,omitempty"`
}

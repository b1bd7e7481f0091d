package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNoPendingTasks = errors.New("no pending tasks")
	ErrRunNotFound    = errors.New("run not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrUnknownTool    = errors.New("unknown tool")
)

// PathErrorKind classifies a sandbox rejection
type PathErrorKind string

const (
	PathEmpty       PathErrorKind = "empty"
	PathNotAllowed  PathErrorKind = "not_allowed"
	PathOutsideRoot PathErrorKind = "outside_root"
)

// PathError is returned when a path fails sandbox resolution
type PathError struct {
	Kind PathErrorKind
	Path string
}

func (e *PathError) Error() string {
	switch e.Kind {
	case PathEmpty:
		return "path is empty"
	case PathOutsideRoot:
		return fmt.Sprintf("path %q escapes the repository root", e.Path)
	case PathNotAllowed:
		return fmt.Sprintf("path %q is outside the allowed paths", e.Path)
	}
	return fmt.Sprintf("invalid path %q", e.Path)
}

// ValidationResult aggregates configuration problems. Errors block, warnings don't.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether no blocking errors were found
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ConfigError is returned when a configuration document fails validation
type ConfigError struct {
	Path   string
	Result ValidationResult
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Path, strings.Join(e.Result.Errors, "; "))
}

// PatchIssue is a single conflict between a patch and the repository state
type PatchIssue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (i PatchIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Reason)
}

// PatchValidationError collects every conflict found while validating a patch
type PatchValidationError struct {
	Issues []PatchIssue
}

func (e *PatchValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("patch validation failed (%d issues): %s", len(e.Issues), strings.Join(lines, "; "))
}

// StructureError reports a malformed unified diff
type StructureError struct {
	Line   int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed patch at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed patch: %s", e.Reason)
}

// ApplyError is returned when version control rejects a patch
type ApplyError struct {
	Diagnostics string
	Err         error
	Patch       string
}

func (e *ApplyError) Error() string {
	if e.Diagnostics != "" {
		return fmt.Sprintf("failed to apply patch: %v\n%s", e.Err, e.Diagnostics)
	}
	return fmt.Sprintf("failed to apply patch: %v", e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// ToolExecutionError wraps a failure inside a tool handler
type ToolExecutionError struct {
	Err  error
	Tool string
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// GitError wraps a failed git invocation together with its output
type GitError struct {
	Args   []string
	Err    error
	Op     string
	Output string
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s failed: %v\nOutput: %s", e.Op, e.Err, strings.TrimSpace(e.Output))
}

func (e *GitError) Unwrap() error { return e.Err }

// FinalizeError is returned when finalizing a task fails. CommitHash is set when the
// commit was created before the failure (journal or push).
type FinalizeError struct {
	CommitHash string
	Err        error
}

func (e *FinalizeError) Error() string {
	if e.CommitHash != "" {
		return fmt.Sprintf("commit %s created but %v", e.CommitHash, e.Err)
	}
	return e.Err.Error()
}

func (e *FinalizeError) Unwrap() error { return e.Err }

// CommandTimeoutError is returned when an external command exceeds its deadline
type CommandTimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *CommandTimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s: %s", e.Timeout, e.Command)
}

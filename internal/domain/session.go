package domain

import (
	"fmt"
	"time"
)

// SessionContext is the explicit state shared by every tool call of one orchestration run.
// Push makes every finalize publish the commit, whatever the model asked for.
type SessionContext struct {
	AllowedPaths []string
	Push         bool
	RepoRoot     string
	Task         *Task
}

// TaskDescription returns the session's task description or an empty string
func (s *SessionContext) TaskDescription() string {
	if s == nil || s.Task == nil {
		return ""
	}
	return s.Task.Description
}

// JournalEntry is one append-only audit record written after a commit
type JournalEntry struct {
	CommitHash      string    `json:"commit_hash"`
	TaskDescription string    `json:"task_description"`
	Timestamp       time.Time `json:"timestamp"`
}

// Format renders the entry as a markdown journal block
func (e JournalEntry) Format() string {
	return fmt.Sprintf("\n## %s\nTask: %s\nCommit: %s\n",
		e.Timestamp.UTC().Format(time.RFC3339), e.TaskDescription, e.CommitHash)
}

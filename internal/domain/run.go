package domain

import "time"

// RunMode is the way a session produced its changes
type RunMode string

const (
	RunModeAgent RunMode = "agent"
	RunModePatch RunMode = "patch"
)

// RunOutcome is the terminal state of a session
type RunOutcome string

const (
	RunOutcomeBudgetExhausted RunOutcome = "budget_exhausted"
	RunOutcomeCommitted       RunOutcome = "committed"
	RunOutcomeFailed          RunOutcome = "failed"
	RunOutcomeNoChanges       RunOutcome = "no_changes"
	RunOutcomeNoTask          RunOutcome = "no_task"
	RunOutcomeRunning         RunOutcome = "running"
	RunOutcomeStopped         RunOutcome = "stopped"
)

// Run is the persisted record of one orchestration session
type Run struct {
	Branch          string           `json:"branch"`
	CommitHash      string           `json:"commit_hash,omitempty"`
	Error           string           `json:"error,omitempty"`
	FinishedAt      *time.Time       `json:"finished_at,omitempty"`
	ID              string           `json:"id"`
	Iterations      int              `json:"iterations"`
	Mode            RunMode          `json:"mode"`
	Model           string           `json:"model"`
	Outcome         RunOutcome       `json:"outcome"`
	RepoRoot        string           `json:"repo_root"`
	StartedAt       time.Time        `json:"started_at"`
	TaskDescription string           `json:"task_description"`
	TaskID          string           `json:"task_id"`
	ToolCalls       []ToolCallRecord `json:"tool_calls,omitempty"`
}

// Duration returns how long the run took, or zero while it is still running
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// ToolCallRecord is one dispatched tool call of an agent run
type ToolCallRecord struct {
	Arguments string        `json:"arguments"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration"`
	IsError   bool          `json:"is_error"`
	Name      string        `json:"name"`
	Result    string        `json:"result"`
	RunID     string        `json:"run_id"`
	Sequence  int           `json:"sequence"`
}

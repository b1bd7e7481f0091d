package services

import "github.com/renato0307/obreiro/internal/domain"

// SessionParams configures one run or patch session
type SessionParams struct {
	// ByPriority picks the highest priority task instead of the first pending one
	ByPriority bool
	Model      string
	// OnToolCall is invoked after every dispatched tool call
	OnToolCall func(domain.ToolCallRecord)
	Push       bool
}

// SessionResult is what a session produced
type SessionResult struct {
	// Dirty is set when the session ended with uncommitted changes
	Dirty bool                `json:"dirty"`
	// Gates holds the quality gate results of a patch session
	Gates []domain.GateResult `json:"gates,omitempty"`
	Run   domain.Run          `json:"run"`
	Task  *domain.Task        `json:"task,omitempty"`
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// HistoryService records and reads session history. Recording failures are logged, never fatal.
type HistoryService struct {
	runs ports.RunRepository
}

// NewHistoryService creates a HistoryService. A nil repository disables recording.
func NewHistoryService(runs ports.RunRepository) *HistoryService {
	return &HistoryService{runs: runs}
}

// Start creates the run record for a session
func (s *HistoryService) Start(ctx context.Context, mode domain.RunMode, repoRoot, model string) *domain.Run {
	run := &domain.Run{
		ID:        uuid.New().String(),
		Mode:      mode,
		Model:     model,
		Outcome:   domain.RunOutcomeRunning,
		RepoRoot:  repoRoot,
		StartedAt: time.Now().UTC(),
	}
	if s.runs == nil {
		return run
	}
	if err := s.runs.CreateRun(ctx, run); err != nil {
		logging.Logger.Warn("Failed to record run", "run_id", run.ID, "error", err)
	}
	return run
}

// RecordToolCall stores one dispatched tool call
func (s *HistoryService) RecordToolCall(ctx context.Context, record *domain.ToolCallRecord) {
	if s.runs == nil {
		return
	}
	if err := s.runs.AddToolCall(ctx, record); err != nil {
		logging.Logger.Warn("Failed to record tool call", "run_id", record.RunID, "tool", record.Name, "error", err)
	}
}

// Finish stamps the run with its outcome and persists it
func (s *HistoryService) Finish(ctx context.Context, run *domain.Run, outcome domain.RunOutcome, cause error) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	run.Outcome = outcome
	if cause != nil {
		run.Error = cause.Error()
	}
	if s.runs == nil {
		return
	}
	// The session context may already be cancelled; the final update must still land
	if err := s.runs.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		logging.Logger.Warn("Failed to update run", "run_id", run.ID, "error", err)
	}
}

// List returns the most recent runs, newest first
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

// Get returns one run with its tool calls
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if s.runs == nil {
		return nil, domain.ErrRunNotFound
	}
	return s.runs.GetRun(ctx, id)
}

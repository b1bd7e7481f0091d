package storage

import (
	"time"

	"github.com/renato0307/obreiro/internal/domain"
)

// runModelToDomain converts a RunModel (GORM) to domain.Run
func runModelToDomain(m RunModel) domain.Run {
	run := domain.Run{
		Branch:          m.Branch,
		CommitHash:      m.CommitHash,
		Error:           m.Error,
		FinishedAt:      m.FinishedAt,
		ID:              m.ID,
		Iterations:      m.Iterations,
		Mode:            domain.RunMode(m.Mode),
		Model:           m.Model,
		Outcome:         domain.RunOutcome(m.Outcome),
		RepoRoot:        m.RepoRoot,
		StartedAt:       m.StartedAt,
		TaskDescription: m.TaskDescription,
		TaskID:          m.TaskID,
	}
	for _, tc := range m.ToolCalls {
		run.ToolCalls = append(run.ToolCalls, toolCallModelToDomain(tc))
	}
	return run
}

// domainToRunModel converts a domain.Run to RunModel (GORM). Tool calls are stored separately.
func domainToRunModel(r domain.Run) RunModel {
	return RunModel{
		Branch:          r.Branch,
		CommitHash:      r.CommitHash,
		Error:           r.Error,
		FinishedAt:      r.FinishedAt,
		ID:              r.ID,
		Iterations:      r.Iterations,
		Mode:            string(r.Mode),
		Model:           r.Model,
		Outcome:         string(r.Outcome),
		RepoRoot:        r.RepoRoot,
		StartedAt:       r.StartedAt,
		TaskDescription: r.TaskDescription,
		TaskID:          r.TaskID,
	}
}

func toolCallModelToDomain(m ToolCallModel) domain.ToolCallRecord {
	return domain.ToolCallRecord{
		Arguments: m.Arguments,
		CreatedAt: m.CreatedAt,
		Duration:  time.Duration(m.DurationMs) * time.Millisecond,
		IsError:   m.IsError,
		Name:      m.Name,
		Result:    m.Result,
		RunID:     m.RunID,
		Sequence:  m.Sequence,
	}
}

func domainToToolCallModel(r domain.ToolCallRecord) ToolCallModel {
	return ToolCallModel{
		Arguments:  r.Arguments,
		CreatedAt:  r.CreatedAt,
		DurationMs: r.Duration.Milliseconds(),
		IsError:    r.IsError,
		Name:       r.Name,
		Result:     r.Result,
		RunID:      r.RunID,
		Sequence:   r.Sequence,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
	"github.com/renato0307/obreiro/internal/tools"
)

// AgentService drives the tool-calling conversation for one task at a time
type AgentService struct {
	backlog  *BacklogService
	cfg      *domain.AgentConfig
	history  *HistoryService
	layout   config.ProjectLayout
	model    ports.ModelClient
	registry *tools.Registry
	workflow *WorkflowService
}

// NewAgentService creates a new AgentService
func NewAgentService(
	cfg *domain.AgentConfig,
	layout config.ProjectLayout,
	model ports.ModelClient,
	registry *tools.Registry,
	workflow *WorkflowService,
	backlog *BacklogService,
	history *HistoryService,
) *AgentService {
	return &AgentService{
		backlog:  backlog,
		cfg:      cfg,
		history:  history,
		layout:   layout,
		model:    model,
		registry: registry,
		workflow: workflow,
	}
}

// Run selects the next task, prepares its branch and converses with the model until it
// stops, finalizes or the iteration budget runs out.
// Tool failures go back to the model. Model, branch, finalize and context failures end
// the run with an error.
func (s *AgentService) Run(ctx context.Context, params SessionParams) (*SessionResult, error) {
	task, err := s.backlog.NextTask(params.ByPriority)
	if errors.Is(err, domain.ErrNoPendingTasks) {
		logging.Logger.Info("No pending tasks")
		return &SessionResult{Run: domain.Run{Outcome: domain.RunOutcomeNoTask}}, nil
	}
	if err != nil {
		return nil, err
	}

	model := orDefault(params.Model, s.cfg.Model)
	run := s.history.Start(ctx, domain.RunModeAgent, s.layout.Root, model)
	run.TaskDescription = task.Description
	run.TaskID = task.ID
	result := &SessionResult{Task: task}

	run.Branch = s.workflow.BranchName(task.Description)
	if err := s.workflow.EnsureBranch(ctx, run.Branch); err != nil {
		err = fmt.Errorf("failed to prepare branch %s: %w", run.Branch, err)
		s.history.Finish(ctx, run, domain.RunOutcomeFailed, err)
		return nil, err
	}
	logging.Logger.Info("Running agent", "task", task.Description, "branch", run.Branch, "model", model)

	session := &domain.SessionContext{
		AllowedPaths: s.cfg.AllowedPaths,
		Push:         params.Push,
		RepoRoot:     s.layout.Root,
		Task:         task,
	}

	outcome, err := s.converse(ctx, run, session, model, params)
	s.history.Finish(ctx, run, outcome, err)
	result.Run = *run
	if err != nil {
		return nil, err
	}

	dirty, statusErr := s.workflow.HasChanges(context.WithoutCancel(ctx))
	if statusErr != nil {
		logging.Logger.Warn("Failed to check working tree", "error", statusErr)
	}
	if dirty {
		logging.Logger.Warn("Agent session ended with uncommitted changes", "run_id", run.ID)
		result.Dirty = true
	}
	return result, nil
}

func (s *AgentService) converse(ctx context.Context, run *domain.Run, session *domain.SessionContext, model string, params SessionParams) (domain.RunOutcome, error) {
	prompt, err := buildPromptInput(s.cfg, s.layout, s.backlog, session.Task)
	if err != nil {
		return domain.RunOutcomeFailed, err
	}

	messages := []domain.Message{
		{Content: SystemPrompt(prompt), Role: domain.RoleSystem},
		{Content: UserPrompt(prompt), Role: domain.RoleUser},
	}
	definitions := s.registry.Definitions()
	sequence := 0

	for run.Iterations < s.cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			return domain.RunOutcomeFailed, err
		}
		run.Iterations++

		completion, err := s.model.Complete(ctx, domain.CompletionRequest{
			Messages: messages,
			Model:    model,
			Tools:    definitions,
		})
		if err != nil {
			return domain.RunOutcomeFailed, fmt.Errorf("model request failed: %w", err)
		}

		reply := completion.Message
		reply.Role = domain.RoleAssistant
		messages = append(messages, reply)

		if len(reply.ToolCalls) == 0 {
			if completion.FinishReason == domain.FinishReasonStop || completion.FinishReason == domain.FinishReasonLength {
				logging.Logger.Info("Model ended the session", "finish_reason", completion.FinishReason, "iterations", run.Iterations)
				return s.finalOutcome(run, domain.RunOutcomeStopped), nil
			}
			continue
		}

		for _, call := range reply.ToolCalls {
			sequence++
			started := time.Now()
			result, callErr := s.registry.Call(ctx, session, call.Name, call.Arguments)
			payload, isErr := tools.Encode(call.Name, result, callErr)

			record := domain.ToolCallRecord{
				Arguments: call.Arguments,
				CreatedAt: started.UTC(),
				Duration:  time.Since(started),
				IsError:   isErr,
				Name:      call.Name,
				Result:    payload,
				RunID:     run.ID,
				Sequence:  sequence,
			}
			s.history.RecordToolCall(ctx, &record)
			if params.OnToolCall != nil {
				params.OnToolCall(record)
			}

			var finalizeErr *domain.FinalizeError
			if errors.As(callErr, &finalizeErr) {
				run.CommitHash = finalizeErr.CommitHash
				return domain.RunOutcomeFailed, finalizeErr
			}
			if finalized, ok := result.(*domain.FinalizeResult); ok && finalized.Committed {
				run.CommitHash = finalized.CommitHash
			}

			messages = append(messages, domain.Message{
				Content:    payload,
				Role:       domain.RoleTool,
				ToolCallID: call.ID,
			})
		}
	}

	logging.Logger.Warn("Iteration budget exhausted", "max_iterations", s.cfg.MaxIterations)
	return s.finalOutcome(run, domain.RunOutcomeBudgetExhausted), nil
}

// finalOutcome prefers committed over how the conversation ended
func (s *AgentService) finalOutcome(run *domain.Run, ended domain.RunOutcome) domain.RunOutcome {
	if run.CommitHash != "" {
		return domain.RunOutcomeCommitted
	}
	return ended
}

func buildPromptInput(cfg *domain.AgentConfig, layout config.ProjectLayout, backlog *BacklogService, task *domain.Task) (PromptInput, error) {
	projectPrompt, err := readOptional(layout.Abs(layout.PromptFile))
	if err != nil {
		return PromptInput{}, err
	}
	backlogContent, err := readOptional(backlog.Path())
	if err != nil {
		return PromptInput{}, err
	}
	return PromptInput{
		Backlog:       backlogContent,
		BacklogPath:   layout.TasksFile,
		Config:        cfg,
		ProjectPrompt: projectPrompt,
		RepoRoot:      layout.Root,
		Task:          task,
	}, nil
}

// readOptional returns the file content, or an empty string when it does not exist
func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/patch"
	"github.com/renato0307/obreiro/internal/ports"
	"github.com/renato0307/obreiro/internal/tools"
)

// repoTreeDepth limits the repository tree sent with patch prompts
const repoTreeDepth = 3

// PatchService implements single-shot patch mode: one diff per task, validated and
// re-requested up to Retry times before it is applied and committed
type PatchService struct {
	applier  ports.PatchApplier
	backlog  *BacklogService
	cfg      *domain.AgentConfig
	history  *HistoryService
	layout   config.ProjectLayout
	model    ports.ModelClient
	quality  *QualityService
	workflow *WorkflowService
}

// NewPatchService creates a new PatchService
func NewPatchService(
	cfg *domain.AgentConfig,
	layout config.ProjectLayout,
	model ports.ModelClient,
	applier ports.PatchApplier,
	workflow *WorkflowService,
	backlog *BacklogService,
	quality *QualityService,
	history *HistoryService,
) *PatchService {
	return &PatchService{
		applier:  applier,
		backlog:  backlog,
		cfg:      cfg,
		history:  history,
		layout:   layout,
		model:    model,
		quality:  quality,
		workflow: workflow,
	}
}

// Run executes patch mode for the next pending task
func (s *PatchService) Run(ctx context.Context, params SessionParams) (*SessionResult, error) {
	task, err := s.backlog.NextTask(params.ByPriority)
	if errors.Is(err, domain.ErrNoPendingTasks) {
		logging.Logger.Info("No pending tasks")
		return &SessionResult{Run: domain.Run{Outcome: domain.RunOutcomeNoTask}}, nil
	}
	if err != nil {
		return nil, err
	}

	model := orDefault(params.Model, s.cfg.Model)
	run := s.history.Start(ctx, domain.RunModePatch, s.layout.Root, model)
	run.TaskDescription = task.Description
	run.TaskID = task.ID
	run.Branch = s.workflow.BranchName(task.Description)
	result := &SessionResult{Task: task}

	outcome, err := s.execute(ctx, run, task, model, params, result)
	s.history.Finish(ctx, run, outcome, err)
	result.Run = *run
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PatchService) execute(ctx context.Context, run *domain.Run, task *domain.Task, model string, params SessionParams, result *SessionResult) (domain.RunOutcome, error) {
	if err := s.workflow.EnsureBranch(ctx, run.Branch); err != nil {
		return domain.RunOutcomeFailed, fmt.Errorf("failed to prepare branch %s: %w", run.Branch, err)
	}
	logging.Logger.Info("Running patch mode", "task", task.Description, "branch", run.Branch, "model", model)

	session := &domain.SessionContext{
		AllowedPaths: s.cfg.AllowedPaths,
		RepoRoot:     s.layout.Root,
		Task:         task,
	}

	parsed, err := s.requestPatch(ctx, run, session, model)
	if err != nil {
		return domain.RunOutcomeFailed, err
	}

	if err := s.applier.ApplyPatch(ctx, parsed.Text, parsed.Strip); err != nil {
		return domain.RunOutcomeFailed, err
	}
	logging.Logger.Info("Patch applied", "files", len(parsed.Changes), "changed_lines", parsed.ChangedLines)

	gates, err := s.quality.RunGates(ctx)
	result.Gates = gates
	if err != nil {
		return domain.RunOutcomeFailed, err
	}
	if failed := domain.FailedGates(gates); len(failed) > 0 {
		logging.Logger.Warn("Quality gates failed, committing anyway", "gates", failed)
	}

	if _, err := s.backlog.CompleteByDescription(task.Description); err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
		return domain.RunOutcomeFailed, err
	}

	finalized, err := s.workflow.Finalize(ctx, session, s.cfg.CommitMessage(task.Description), params.Push)
	if err != nil {
		var finalizeErr *domain.FinalizeError
		if errors.As(err, &finalizeErr) {
			run.CommitHash = finalizeErr.CommitHash
		}
		return domain.RunOutcomeFailed, err
	}
	if !finalized.Committed {
		return domain.RunOutcomeNoChanges, nil
	}
	run.CommitHash = finalized.CommitHash
	return domain.RunOutcomeCommitted, nil
}

// requestPatch asks the model for a diff until one passes parsing and validation
// or the retry allowance is spent
func (s *PatchService) requestPatch(ctx context.Context, run *domain.Run, session *domain.SessionContext, model string) (*patch.Patch, error) {
	prompt, err := buildPromptInput(s.cfg, s.layout, s.backlog, session.Task)
	if err != nil {
		return nil, err
	}
	prompt.RepoTree = RepoTree(s.layout.Root, repoTreeDepth)

	messages := []domain.Message{
		{Content: PatchSystemPrompt(prompt), Role: domain.RoleSystem},
		{Content: PatchPrompt(prompt), Role: domain.RoleUser},
	}

	attempts := s.cfg.Retry + 1
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run.Iterations++

		completion, err := s.model.Complete(ctx, domain.CompletionRequest{Messages: messages, Model: model})
		if err != nil {
			return nil, fmt.Errorf("model request failed: %w", err)
		}
		reply := completion.Message
		reply.Role = domain.RoleAssistant
		messages = append(messages, reply)

		parsed, err := tools.Prepare(ctx, session, s.applier, reply.Content, s.cfg.MaxChangedLines)
		if err == nil {
			return parsed, nil
		}
		if !rejectable(err) || attempt >= attempts {
			return nil, err
		}

		logging.Logger.Warn("Patch rejected, requesting a corrected one", "attempt", attempt, "error", err)
		messages = append(messages, domain.Message{Content: PatchRetryPrompt(err), Role: domain.RoleUser})
	}
}

// rejectable reports whether err describes a patch the model can correct
func rejectable(err error) bool {
	var validationErr *domain.PatchValidationError
	var structureErr *domain.StructureError
	return errors.As(err, &validationErr) || errors.As(err, &structureErr)
}

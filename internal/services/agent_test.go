package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/adapters/process"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/ports"
	portsmocks "github.com/renato0307/obreiro/internal/ports/mocks"
	"github.com/renato0307/obreiro/internal/tools"
)

func toolCallReply(id, name, args string) *domain.Completion {
	return &domain.Completion{
		FinishReason: domain.FinishReasonToolCalls,
		Message: domain.Message{
			Role:      domain.RoleAssistant,
			ToolCalls: []domain.ToolCall{{Arguments: args, ID: id, Name: name}},
		},
	}
}

func stopReply(content string) *domain.Completion {
	return &domain.Completion{
		FinishReason: domain.FinishReasonStop,
		Message:      domain.Message{Content: content, Role: domain.RoleAssistant},
	}
}

// scriptedModel replies with the given completions in order and records every request
func scriptedModel(t *testing.T, replies ...*domain.Completion) (*portsmocks.MockModelClient, *[]domain.CompletionRequest) {
	t.Helper()
	model := portsmocks.NewMockModelClient(t)
	var requests []domain.CompletionRequest
	model.EXPECT().Complete(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req domain.CompletionRequest) (*domain.Completion, error) {
			requests = append(requests, req)
			if len(requests) > len(replies) {
				return nil, errors.New("unexpected model request")
			}
			return replies[len(requests)-1], nil
		})
	return model, &requests
}

func newAgent(p *project, model ports.ModelClient, runs ports.RunRepository) *AgentService {
	registry := tools.NewRegistry(tools.DefaultTools(tools.Options{
		Applier:         p.git,
		Finalizer:       p.workflow,
		MaxChangedLines: p.cfg.MaxChangedLines,
		Runner:          process.NewShellRunner(),
		Tree:            p.git,
	})...)
	return NewAgentService(p.cfg, p.layout, model, registry, p.workflow, p.backlog, NewHistoryService(runs))
}

func TestAgentRun_WritesAndCommits(t *testing.T) {
	p := newProject(t, "- [ ] Write notes\n")
	model, requests := scriptedModel(t,
		toolCallReply("call_1", "write_file", `{"path":"notes.txt","content":"hello\n"}`),
		toolCallReply("call_2", "finalize_task", `{"commitMessage":"feat: write notes"}`),
		stopReply("All done"),
	)

	var called []string
	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{
		OnToolCall: func(record domain.ToolCallRecord) { called = append(called, record.Name) },
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RunOutcomeCommitted, result.Run.Outcome)
	assert.Equal(t, "ai/write-notes", result.Run.Branch)
	assert.Equal(t, 3, result.Run.Iterations)
	assert.NotEmpty(t, result.Run.CommitHash)
	assert.False(t, result.Dirty)
	assert.Equal(t, "Write notes", result.Task.Description)
	assert.Equal(t, []string{"write_file", "finalize_task"}, called)

	assert.Equal(t, "ai/write-notes", p.repo.Git("rev-parse", "--abbrev-ref", "HEAD"))
	assert.Equal(t, "hello\n", p.repo.ReadFile("notes.txt"))
	assert.Equal(t, "feat: write notes", p.repo.Git("log", "-1", "--format=%s"))
	assert.Equal(t, 1, p.journalEntries(t))

	reqs := *requests
	require.Len(t, reqs, 3)
	assert.Equal(t, p.cfg.Model, reqs[0].Model)
	assert.Len(t, reqs[0].Tools, 9)
	require.Len(t, reqs[0].Messages, 2)
	assert.Equal(t, domain.RoleSystem, reqs[0].Messages[0].Role)
	assert.Contains(t, reqs[0].Messages[1].Content, "Write notes")

	// system, user, assistant, tool result
	require.Len(t, reqs[1].Messages, 4)
	toolResult := reqs[1].Messages[3]
	assert.Equal(t, domain.RoleTool, toolResult.Role)
	assert.Equal(t, "call_1", toolResult.ToolCallID)
	assert.Contains(t, toolResult.Content, `"bytesWritten":6`)
}

func TestAgentRun_ToolErrorsGoBackToModel(t *testing.T) {
	p := newProject(t, "- [ ] Read things\n")
	model, requests := scriptedModel(t,
		toolCallReply("call_1", "read_file", `{"path":"../outside.txt"}`),
		stopReply("Giving up"),
	)

	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunOutcomeStopped, result.Run.Outcome)

	reqs := *requests
	require.Len(t, reqs, 2)
	toolResult := reqs[1].Messages[3]
	assert.Contains(t, toolResult.Content, `"error"`)
	assert.Contains(t, toolResult.Content, `"kind":"path_outside_root"`)
}

func TestAgentRun_BudgetExhausted(t *testing.T) {
	p := newProject(t, "- [ ] Explore\n")
	p.cfg.MaxIterations = 2
	model, requests := scriptedModel(t,
		toolCallReply("call_1", "list_directory", `{}`),
		toolCallReply("call_2", "list_directory", `{"path":"."}`),
	)

	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{})
	require.NoError(t, err)

	assert.Equal(t, domain.RunOutcomeBudgetExhausted, result.Run.Outcome)
	assert.Equal(t, 2, result.Run.Iterations)
	assert.Len(t, *requests, 2)
}

func TestAgentRun_LeavesDirtyTree(t *testing.T) {
	p := newProject(t, "- [ ] Draft\n")
	model, _ := scriptedModel(t,
		toolCallReply("call_1", "write_file", `{"path":"draft.md","content":"wip"}`),
		stopReply("Stopping early"),
	)

	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{})
	require.NoError(t, err)

	assert.Equal(t, domain.RunOutcomeStopped, result.Run.Outcome)
	assert.True(t, result.Dirty)
	assert.Empty(t, result.Run.CommitHash)
}

func TestAgentRun_NoPendingTask(t *testing.T) {
	p := newProject(t, "- [x] Done already\n")
	model := portsmocks.NewMockModelClient(t)

	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunOutcomeNoTask, result.Run.Outcome)
	assert.Nil(t, result.Task)
	assert.Equal(t, "main", p.repo.Git("rev-parse", "--abbrev-ref", "HEAD"))
}

func TestAgentRun_ModelFailureAbortsAndIsRecorded(t *testing.T) {
	p := newProject(t, "- [ ] Anything\n")
	model := portsmocks.NewMockModelClient(t)
	model.EXPECT().Complete(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	runs := portsmocks.NewMockRunRepository(t)
	runs.EXPECT().CreateRun(mock.Anything, mock.Anything).Return(nil).Once()
	var finished *domain.Run
	runs.EXPECT().UpdateRun(mock.Anything, mock.Anything).
		Run(func(_ context.Context, run *domain.Run) { finished = run }).
		Return(nil).Once()

	_, err := newAgent(p, model, runs).Run(context.Background(), SessionParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model request failed")

	require.NotNil(t, finished)
	assert.Equal(t, domain.RunOutcomeFailed, finished.Outcome)
	assert.Equal(t, domain.RunModeAgent, finished.Mode)
	assert.NotNil(t, finished.FinishedAt)
	assert.True(t, strings.Contains(finished.Error, "connection refused"))
}

func TestAgentRun_RecordsToolCalls(t *testing.T) {
	p := newProject(t, "- [ ] Look around\n")
	model, _ := scriptedModel(t,
		toolCallReply("call_1", "git_status", `{}`),
		stopReply("Nothing to do"),
	)

	runs := portsmocks.NewMockRunRepository(t)
	runs.EXPECT().CreateRun(mock.Anything, mock.Anything).Return(nil).Once()
	var records []*domain.ToolCallRecord
	runs.EXPECT().AddToolCall(mock.Anything, mock.Anything).
		Run(func(_ context.Context, record *domain.ToolCallRecord) { records = append(records, record) }).
		Return(nil)
	runs.EXPECT().UpdateRun(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := newAgent(p, model, runs).Run(context.Background(), SessionParams{Model: "custom-model"})
	require.NoError(t, err)
	assert.Equal(t, "custom-model", result.Run.Model)

	require.Len(t, records, 1)
	assert.Equal(t, "git_status", records[0].Name)
	assert.Equal(t, result.Run.ID, records[0].RunID)
	assert.Equal(t, 1, records[0].Sequence)
	assert.False(t, records[0].IsError)
}

func TestAgentRun_CancelledContext(t *testing.T) {
	p := newProject(t, "- [ ] Anything\n")
	model := portsmocks.NewMockModelClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAgent(p, model, nil).Run(ctx, SessionParams{})
	assert.Error(t, err)
}

func TestAgentRun_FinalizePushFailureAborts(t *testing.T) {
	p := newProject(t, "- [ ] Publish notes\n")
	model, requests := scriptedModel(t,
		toolCallReply("call_1", "write_file", `{"path":"notes.txt","content":"hello\n"}`),
		toolCallReply("call_2", "finalize_task", `{"commitMessage":"feat: publish notes","push":true}`),
	)

	runs := portsmocks.NewMockRunRepository(t)
	runs.EXPECT().CreateRun(mock.Anything, mock.Anything).Return(nil).Once()
	runs.EXPECT().AddToolCall(mock.Anything, mock.Anything).Return(nil).Times(2)
	var finished *domain.Run
	runs.EXPECT().UpdateRun(mock.Anything, mock.Anything).
		Run(func(_ context.Context, run *domain.Run) { finished = run }).
		Return(nil).Once()

	_, err := newAgent(p, model, runs).Run(context.Background(), SessionParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push failed")

	var finalizeErr *domain.FinalizeError
	require.True(t, errors.As(err, &finalizeErr))
	var gitErr *domain.GitError
	assert.True(t, errors.As(err, &gitErr))

	assert.Len(t, *requests, 2, "no further model requests after a failed finalize")
	require.NotNil(t, finished)
	assert.Equal(t, domain.RunOutcomeFailed, finished.Outcome)
	assert.Equal(t, finalizeErr.CommitHash, finished.CommitHash)
	assert.True(t, strings.HasPrefix(p.repo.Git("rev-parse", "HEAD"), finished.CommitHash))
	assert.Contains(t, finished.Error, "push failed")
}

func TestAgentRun_PushFlagPublishesCommit(t *testing.T) {
	p := newProjectWithOrigin(t, "- [ ] Publish notes\n")
	model, _ := scriptedModel(t,
		toolCallReply("call_1", "write_file", `{"path":"notes.txt","content":"hello\n"}`),
		toolCallReply("call_2", "finalize_task", `{"commitMessage":"feat: publish notes"}`),
		stopReply("Done"),
	)

	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{Push: true})
	require.NoError(t, err)

	assert.Equal(t, domain.RunOutcomeCommitted, result.Run.Outcome)
	assert.Equal(t, p.repo.Git("rev-parse", "HEAD"), p.repo.Git("rev-parse", "origin/ai/publish-notes"))
}

func TestAgentRun_WithoutPushFlagCommitStaysLocal(t *testing.T) {
	p := newProjectWithOrigin(t, "- [ ] Keep notes\n")
	model, _ := scriptedModel(t,
		toolCallReply("call_1", "write_file", `{"path":"notes.txt","content":"hello\n"}`),
		toolCallReply("call_2", "finalize_task", `{"commitMessage":"feat: keep notes"}`),
		stopReply("Done"),
	)

	result, err := newAgent(p, model, nil).Run(context.Background(), SessionParams{})
	require.NoError(t, err)

	assert.Equal(t, domain.RunOutcomeCommitted, result.Run.Outcome)
	assert.Empty(t, p.repo.Git("branch", "-r", "--list", "origin/ai/keep-notes"))
}

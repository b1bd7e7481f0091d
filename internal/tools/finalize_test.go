package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
)

type recordingFinalizer struct {
	message string
	push    bool
	result  *domain.FinalizeResult
}

func (f *recordingFinalizer) Finalize(ctx context.Context, session *domain.SessionContext, message string, push bool) (*domain.FinalizeResult, error) {
	f.message = message
	f.push = push
	return f.result, nil
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestFinalizeTask(t *testing.T) {
	finalizer := &recordingFinalizer{result: &domain.FinalizeResult{CommitHash: "abc1234", Committed: true}}
	registry := NewRegistry(DefaultTools(Options{Finalizer: finalizer})...)

	payload, isErr := registry.Dispatch(context.Background(), newSession(t), "finalize_task", `{"commitMessage": " feat: x ", "push": true}`)
	require.False(t, isErr)
	assert.Equal(t, "feat: x", finalizer.message)
	assert.True(t, finalizer.push)
	assert.JSONEq(t, `{"commitHash":"abc1234","committed":true}`, payload)
}

func TestFinalizeTask_RequiresMessage(t *testing.T) {
	finalizer := &recordingFinalizer{}
	registry := NewRegistry(DefaultTools(Options{Finalizer: finalizer})...)

	payload, isErr := registry.Dispatch(context.Background(), newSession(t), "finalize_task", `{}`)
	require.True(t, isErr)
	assert.Equal(t, "invalid_arguments", decodePayload(t, payload)["kind"])
	assert.Empty(t, finalizer.message)
}

package tools

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/ports"
	portsmocks "github.com/renato0307/obreiro/internal/ports/mocks"
)

func TestCommandTimeout(t *testing.T) {
	ms := func(v int64) *int64 { return &v }

	assert.Equal(t, 120*time.Second, commandTimeout(nil))
	assert.Equal(t, time.Second, commandTimeout(ms(10)))
	assert.Equal(t, 300*time.Second, commandTimeout(ms(999_999)))
	assert.Equal(t, 5*time.Second, commandTimeout(ms(5000)))
}

func TestRunCommand(t *testing.T) {
	session := newSession(t)
	runner := portsmocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, ports.CommandRequest{
		Command:   "npm test",
		Dir:       filepath.Join(session.RepoRoot, "web"),
		MaxOutput: CommandOutputLimit,
		Timeout:   2 * time.Second,
	}).Return(&ports.CommandResult{ExitCode: 1, Stderr: "fail", Stdout: "ran"}, nil)

	registry := NewRegistry(DefaultTools(Options{Runner: runner})...)
	payload, isErr := registry.Dispatch(context.Background(), session, "run_command", `{"command": "  npm test ", "cwd": "web", "timeoutMs": 2000}`)
	require.False(t, isErr)

	out := decodePayload(t, payload)
	assert.Equal(t, "npm test", out["command"])
	assert.Equal(t, float64(1), out["exitCode"])
	assert.Equal(t, "ran", out["stdout"])
	assert.Equal(t, "fail", out["stderr"])
}

func TestRunCommand_Timeout(t *testing.T) {
	session := newSession(t)
	runner := portsmocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, mock.Anything).
		Return(&ports.CommandResult{ExitCode: -1}, &domain.CommandTimeoutError{Command: "sleep 999", Timeout: time.Second})

	registry := NewRegistry(DefaultTools(Options{Runner: runner})...)
	payload, isErr := registry.Dispatch(context.Background(), session, "run_command", `{"command": "sleep 999", "timeoutMs": 1}`)
	require.True(t, isErr)
	assert.Equal(t, "timeout", decodePayload(t, payload)["kind"])
}

func TestRunCommand_Validation(t *testing.T) {
	session := newSession(t)
	registry := NewRegistry(DefaultTools(Options{Runner: portsmocks.NewMockCommandRunner(t)})...)

	payload, isErr := registry.Dispatch(context.Background(), session, "run_command", `{"command": "   "}`)
	assert.True(t, isErr)
	assert.Equal(t, "invalid_arguments", decodePayload(t, payload)["kind"])

	payload, isErr = registry.Dispatch(context.Background(), session, "run_command", `{"command": "ls", "cwd": "../outside"}`)
	assert.True(t, isErr)
	assert.Equal(t, "path_outside_root", decodePayload(t, payload)["kind"])
}

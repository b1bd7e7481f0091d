package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/ports"
	"github.com/renato0307/obreiro/internal/sandbox"
)

const (
	// CommandOutputLimit caps stdout and stderr returned to the model, in characters
	CommandOutputLimit = 8000

	defaultCommandTimeout = 120 * time.Second
	maxCommandTimeout     = 300 * time.Second
	minCommandTimeout     = time.Second
)

type runCommandArgs struct {
	Command   string `json:"command"`
	Cwd       string `json:"cwd"`
	TimeoutMs *int64 `json:"timeoutMs"`
}

type runCommandTool struct {
	runner ports.CommandRunner
}

func (t *runCommandTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Execute a shell command within the repository (use for linting, tests, builds, etc).",
		Name:        "run_command",
		Parameters: objectSchema(map[string]any{
			"command": map[string]any{"type": "string"},
			"cwd": map[string]any{
				"description": "Working directory relative to repository root.",
				"type":        "string",
			},
			"timeoutMs": map[string]any{
				"description": "Maximum execution time in milliseconds (default 120000).",
				"type":        "integer",
			},
		}, "command"),
	}
}

func (t *runCommandTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[runCommandArgs](raw)
	if err != nil {
		return nil, err
	}

	command := strings.TrimSpace(args.Command)
	if command == "" {
		return nil, &ArgumentError{Reason: "command cannot be empty"}
	}

	dir := session.RepoRoot
	if strings.TrimSpace(args.Cwd) != "" {
		if dir, err = sandbox.Resolve(session, args.Cwd, false); err != nil {
			return nil, err
		}
	}

	result, err := t.runner.Run(ctx, ports.CommandRequest{
		Command:   command,
		Dir:       dir,
		MaxOutput: CommandOutputLimit,
		Timeout:   commandTimeout(args.TimeoutMs),
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"command":  command,
		"exitCode": result.ExitCode,
		"stderr":   result.Stderr,
		"stdout":   result.Stdout,
	}, nil
}

func commandTimeout(ms *int64) time.Duration {
	if ms == nil {
		return defaultCommandTimeout
	}
	timeout := time.Duration(*ms) * time.Millisecond
	if timeout < minCommandTimeout {
		return minCommandTimeout
	}
	if timeout > maxCommandTimeout {
		return maxCommandTimeout
	}
	return timeout
}

type gitStatusTool struct {
	tree ports.WorkingTree
}

func (t *gitStatusTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Get the short git status for the repository.",
		Name:        "git_status",
		Parameters:  objectSchema(map[string]any{}),
	}
}

func (t *gitStatusTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	if t.tree == nil {
		return nil, errors.New("git status is unavailable")
	}
	status, err := t.tree.StatusShort(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": status}, nil
}

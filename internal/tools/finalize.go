package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
)

type finalizeTaskArgs struct {
	CommitMessage string `json:"commitMessage"`
	Push          bool   `json:"push"`
}

type finalizeTaskTool struct {
	finalizer Finalizer
}

func (t *finalizeTaskTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Stage all changes, create a git commit, update the AI journal, and optionally push to remote.",
		Name:        "finalize_task",
		Parameters: objectSchema(map[string]any{
			"commitMessage": map[string]any{"type": "string"},
			"push": map[string]any{
				"description": "Whether to push the commit to the remote repository.",
				"type":        "boolean",
			},
		}, "commitMessage"),
	}
}

func (t *finalizeTaskTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[finalizeTaskArgs](raw)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(args.CommitMessage)
	if message == "" {
		return nil, &ArgumentError{Reason: "commitMessage is required"}
	}

	return t.finalizer.Finalize(ctx, session, message, args.Push)
}

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/patch"
	"github.com/renato0307/obreiro/internal/ports"
	"github.com/renato0307/obreiro/internal/sandbox"
)

type applyPatchArgs struct {
	Patch string `json:"patch"`
}

type applyPatchTool struct {
	applier         ports.PatchApplier
	maxChangedLines int
}

func (t *applyPatchTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Apply a unified diff to the repository. Every changed path must be inside the allowed paths and match the current repository state.",
		Name:        "apply_patch",
		Parameters: objectSchema(map[string]any{
			"patch": map[string]any{
				"description": "Unified diff with --- and +++ file headers.",
				"type":        "string",
			},
		}, "patch"),
	}
}

func (t *applyPatchTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[applyPatchArgs](raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Patch) == "" {
		return nil, &ArgumentError{Reason: "patch cannot be empty"}
	}

	parsed, err := Prepare(ctx, session, t.applier, args.Patch, t.maxChangedLines)
	if err != nil {
		return nil, err
	}

	if err := t.applier.ApplyPatch(ctx, parsed.Text, parsed.Strip); err != nil {
		return nil, err
	}

	logging.Logger.Info("Patch applied", "files", len(parsed.Changes), "changed_lines", parsed.ChangedLines)
	return map[string]any{
		"applied":      true,
		"changedLines": parsed.ChangedLines,
		"files":        parsed.Paths(),
		"warnings":     parsed.Warnings,
	}, nil
}

// Prepare cleans and parses raw model output, then checks every touched path against
// the sandbox and the live repository. The paths git itself reports for the patch must
// match the parsed headers, so nothing reaches git apply unchecked. Sandbox violations
// are reported as patch issues so they reach the model together with any state conflicts.
func Prepare(ctx context.Context, session *domain.SessionContext, applier ports.PatchApplier, raw string, maxChangedLines int) (*patch.Patch, error) {
	cleaned, err := patch.Clean(raw)
	if err != nil {
		return nil, err
	}

	parsed, err := patch.Parse(cleaned)
	if err != nil {
		return nil, err
	}

	var issues []domain.PatchIssue
	declared := make(map[string]bool)
	for _, p := range parsed.Paths() {
		abs, err := sandbox.Resolve(session, p, true)
		if err != nil {
			issues = append(issues, domain.PatchIssue{Path: p, Reason: err.Error()})
			continue
		}
		declared[abs] = true
	}
	if len(issues) > 0 {
		return nil, &domain.PatchValidationError{Issues: issues}
	}

	touched, err := applier.PatchPaths(ctx, parsed.Text, parsed.Strip)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.StructureError{Reason: "git cannot read the patch: " + gitMessage(err)}
	}
	for _, p := range touched {
		abs, err := sandbox.Resolve(session, p, true)
		switch {
		case err != nil:
			issues = append(issues, domain.PatchIssue{Path: p, Reason: err.Error()})
		case !declared[abs]:
			issues = append(issues, domain.PatchIssue{Path: p, Reason: "path is not named by a --- / +++ file header"})
		}
	}
	if len(issues) > 0 {
		return nil, &domain.PatchValidationError{Issues: issues}
	}

	if err := patch.Validate(parsed.Changes, session.RepoRoot); err != nil {
		return nil, err
	}

	if maxChangedLines > 0 && parsed.ChangedLines > maxChangedLines {
		parsed.Warnings = append(parsed.Warnings, patch.OversizeWarning(parsed.ChangedLines, maxChangedLines))
	}
	for _, w := range parsed.Warnings {
		logging.Logger.Warn("Patch warning", "warning", w)
	}
	return parsed, nil
}

func gitMessage(err error) string {
	var gitErr *domain.GitError
	if errors.As(err, &gitErr) && strings.TrimSpace(gitErr.Output) != "" {
		return strings.TrimSpace(gitErr.Output)
	}
	return err.Error()
}

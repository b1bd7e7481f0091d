// Package tools exposes the operations the model may invoke during a session.
// Every handler decodes its arguments into a typed struct and resolves paths
// through the sandbox before touching the filesystem.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// Tool is one operation the model can call
type Tool interface {
	Definition() domain.ToolDefinition
	Call(ctx context.Context, session *domain.SessionContext, args json.RawMessage) (any, error)
}

// Finalizer commits the session's changes
type Finalizer interface {
	Finalize(ctx context.Context, session *domain.SessionContext, message string, push bool) (*domain.FinalizeResult, error)
}

// Options carries the collaborators the default tools need
type Options struct {
	Applier         ports.PatchApplier
	Finalizer       Finalizer
	MaxChangedLines int
	Runner          ports.CommandRunner
	Tree            ports.WorkingTree
}

// DefaultTools returns the full tool set in the order it is advertised to the model
func DefaultTools(opts Options) []Tool {
	return []Tool{
		&listDirectoryTool{},
		&readFileTool{},
		&writeFileTool{},
		&appendFileTool{},
		&deletePathTool{},
		&runCommandTool{runner: opts.Runner},
		&gitStatusTool{tree: opts.Tree},
		&applyPatchTool{applier: opts.Applier, maxChangedLines: opts.MaxChangedLines},
		&finalizeTaskTool{finalizer: opts.Finalizer},
	}
}

// Registry maps tool names to handlers
type Registry struct {
	definitions []domain.ToolDefinition
	tools       map[string]Tool
}

// NewRegistry builds a registry; later tools replace earlier ones with the same name
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, tool := range tools {
		def := tool.Definition()
		if _, exists := r.tools[def.Name]; exists {
			for i := range r.definitions {
				if r.definitions[i].Name == def.Name {
					r.definitions[i] = def
				}
			}
		} else {
			r.definitions = append(r.definitions, def)
		}
		r.tools[def.Name] = tool
	}
	return r
}

// Definitions returns the tool schemas to advertise to the model
func (r *Registry) Definitions() []domain.ToolDefinition {
	out := make([]domain.ToolDefinition, len(r.definitions))
	copy(out, r.definitions)
	return out
}

// Lookup returns the tool registered under name
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs a tool and returns its raw result
func (r *Registry) Call(ctx context.Context, session *domain.SessionContext, name, arguments string) (any, error) {
	tool, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}

	raw := json.RawMessage(strings.TrimSpace(arguments))
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	result, err := tool.Call(ctx, session, raw)
	if err != nil {
		return nil, &domain.ToolExecutionError{Err: err, Tool: name}
	}
	return result, nil
}

// Dispatch runs a tool and always returns a JSON document for the model.
// Failures are serialized as {"error": ...} and reported through isError.
func (r *Registry) Dispatch(ctx context.Context, session *domain.SessionContext, name, arguments string) (string, bool) {
	result, err := r.Call(ctx, session, name, arguments)
	return Encode(name, result, err)
}

// Encode turns the outcome of Call into the JSON document sent back to the model
func Encode(name string, result any, err error) (string, bool) {
	if err != nil {
		logging.Logger.Warn("Tool call failed", "tool", name, "error", err)
		return ErrorPayload(err), true
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return ErrorPayload(fmt.Errorf("failed to encode %s result: %w", name, err)), true
	}
	return string(encoded), false
}

// ErrorPayload serializes err for the model, naming its kind when it is a typed error
func ErrorPayload(err error) string {
	payload := map[string]any{"error": rootMessage(err)}

	var pathErr *domain.PathError
	var validationErr *domain.PatchValidationError
	var structureErr *domain.StructureError
	var applyErr *domain.ApplyError
	var gitErr *domain.GitError
	var timeoutErr *domain.CommandTimeoutError
	var argsErr *ArgumentError

	switch {
	case errors.Is(err, domain.ErrUnknownTool):
		payload["kind"] = "unknown_tool"
	case errors.As(err, &argsErr):
		payload["kind"] = "invalid_arguments"
	case errors.As(err, &pathErr):
		payload["kind"] = "path_" + string(pathErr.Kind)
	case errors.As(err, &validationErr):
		payload["kind"] = "patch_validation"
		payload["issues"] = validationErr.Issues
	case errors.As(err, &structureErr):
		payload["kind"] = "patch_structure"
	case errors.As(err, &applyErr):
		payload["kind"] = "patch_apply"
	case errors.As(err, &gitErr):
		payload["kind"] = "git"
	case errors.As(err, &timeoutErr):
		payload["kind"] = "timeout"
	}

	encoded, mErr := json.Marshal(payload)
	if mErr != nil {
		return `{"error":"unencodable error"}`
	}
	return string(encoded)
}

// rootMessage drops the ToolExecutionError prefix; the model already knows which tool it called
func rootMessage(err error) string {
	var execErr *domain.ToolExecutionError
	if errors.As(err, &execErr) {
		return execErr.Err.Error()
	}
	return err.Error()
}

// ArgumentError reports tool arguments that could not be decoded or are missing
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return "invalid arguments: " + e.Reason
}

func decodeArgs[T any](raw json.RawMessage) (T, error) {
	var args T
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, &ArgumentError{Reason: err.Error()}
	}
	return args, nil
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/sandbox"
)

const (
	defaultListDepth = 2
	maxListDepth     = 5
)

// DirEntry is one node of a list_directory tree
type DirEntry struct {
	Children []DirEntry `json:"children,omitempty"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Type     string     `json:"type"`
}

type listDirectoryArgs struct {
	Depth     *int   `json:"depth"`
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type listDirectoryTool struct{}

func (t *listDirectoryTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "List files and folders within a directory relative to the repository root.",
		Name:        "list_directory",
		Parameters: objectSchema(map[string]any{
			"depth": map[string]any{
				"description": "Maximum recursion depth when recursive is true.",
				"maximum":     maxListDepth,
				"minimum":     1,
				"type":        "integer",
			},
			"path": map[string]any{
				"description": "Directory to inspect. Defaults to repository root.",
				"type":        "string",
			},
			"recursive": map[string]any{
				"description": "Whether to include nested directories.",
				"type":        "boolean",
			},
		}),
	}
}

func (t *listDirectoryTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[listDirectoryArgs](raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Path) == "" {
		args.Path = "."
	}

	dir, err := sandbox.Resolve(session, args.Path, false)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory '%s' does not exist", args.Path)
	}

	depth := defaultListDepth
	if args.Depth != nil {
		depth = clamp(*args.Depth, 1, maxListDepth)
	}

	return walkDirectory(session, dir, 1, depth, args.Recursive)
}

func walkDirectory(session *domain.SessionContext, dir string, depth, limit int, recursive bool) ([]DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	out := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		item := DirEntry{
			Name: entry.Name(),
			Path: sandbox.Relative(session, full),
			Type: "file",
		}
		if entry.IsDir() {
			item.Type = "directory"
			if recursive && depth < limit {
				children, err := walkDirectory(session, full, depth+1, limit, recursive)
				if err != nil {
					return nil, err
				}
				item.Children = children
			}
		}
		out = append(out, item)
	}
	return out, nil
}

type readFileArgs struct {
	Encoding string `json:"encoding"`
	Path     string `json:"path"`
}

type readFileTool struct{}

func (t *readFileTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Read the full contents of a text file.",
		Name:        "read_file",
		Parameters: objectSchema(map[string]any{
			"encoding": map[string]any{
				"description": "File encoding: utf8 (default) or base64.",
				"type":        "string",
			},
			"path": map[string]any{"type": "string"},
		}, "path"),
	}
}

func (t *readFileTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[readFileArgs](raw)
	if err != nil {
		return nil, err
	}

	// Reads are confined to the root but not to the allowlist
	full, err := sandbox.Resolve(session, args.Path, false)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(strings.TrimSpace(args.Encoding))
	if encoding == "" {
		encoding = "utf8"
	}
	if encoding != "utf8" && encoding != "utf-8" && encoding != "base64" {
		return nil, &ArgumentError{Reason: fmt.Sprintf("unsupported encoding %q", args.Encoding)}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args.Path, err)
	}

	content := string(data)
	if encoding == "base64" {
		content = base64.StdEncoding.EncodeToString(data)
	}

	return map[string]any{
		"content":  content,
		"encoding": encoding,
		"path":     sandbox.Relative(session, full),
	}, nil
}

type contentArgs struct {
	Content *string `json:"content"`
	Path    string  `json:"path"`
}

func (a contentArgs) validate() error {
	if a.Content == nil {
		return &ArgumentError{Reason: "content is required"}
	}
	return nil
}

func contentSchema() map[string]any {
	return objectSchema(map[string]any{
		"content": map[string]any{"type": "string"},
		"path":    map[string]any{"type": "string"},
	}, "path", "content")
}

type writeFileTool struct{}

func (t *writeFileTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Overwrite a file with new content (creates directories if needed).",
		Name:        "write_file",
		Parameters:  contentSchema(),
	}
}

func (t *writeFileTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[contentArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := args.validate(); err != nil {
		return nil, err
	}

	full, err := sandbox.Resolve(session, args.Path, true)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(full, []byte(*args.Content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", args.Path, err)
	}

	return map[string]any{
		"bytesWritten": len(*args.Content),
		"path":         sandbox.Relative(session, full),
	}, nil
}

type appendFileTool struct{}

func (t *appendFileTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Append content to the end of a file (creates file if missing).",
		Name:        "append_file",
		Parameters:  contentSchema(),
	}
}

func (t *appendFileTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[contentArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := args.validate(); err != nil {
		return nil, err
	}

	full, err := sandbox.Resolve(session, args.Path, true)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", args.Path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(*args.Content); err != nil {
		return nil, fmt.Errorf("failed to append to %s: %w", args.Path, err)
	}

	return map[string]any{
		"bytesAppended": len(*args.Content),
		"path":          sandbox.Relative(session, full),
	}, nil
}

type pathArgs struct {
	Path string `json:"path"`
}

type deletePathTool struct{}

func (t *deletePathTool) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Description: "Delete a file or directory.",
		Name:        "delete_path",
		Parameters: objectSchema(map[string]any{
			"path": map[string]any{"type": "string"},
		}, "path"),
	}
}

func (t *deletePathTool) Call(ctx context.Context, session *domain.SessionContext, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[pathArgs](raw)
	if err != nil {
		return nil, err
	}

	full, err := sandbox.Resolve(session, args.Path, true)
	if err != nil {
		return nil, err
	}
	if full == filepath.Clean(session.RepoRoot) {
		return nil, &domain.PathError{Kind: domain.PathNotAllowed, Path: args.Path}
	}

	if _, err := os.Lstat(full); os.IsNotExist(err) {
		return map[string]any{"message": "Path does not exist", "removed": false}, nil
	}
	if err := os.RemoveAll(full); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", args.Path, err)
	}

	return map[string]any{
		"path":    sandbox.Relative(session, full),
		"removed": true,
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

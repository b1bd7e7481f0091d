package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// PromptInput is everything the session prompts are built from
type PromptInput struct {
	Backlog       string
	BacklogPath   string
	Config        *domain.AgentConfig
	ProjectPrompt string
	RepoRoot      string
	RepoTree      string
	Task          *domain.Task
}

// SystemPrompt states the agent's role, its path scope and the finalize contract
func SystemPrompt(in PromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an autonomous senior full-stack engineer working on a codebase located at %s.\n", in.RepoRoot)
	b.WriteString("You have direct access to the repository through the provided tools. Follow these rules:\n")
	b.WriteString("- Make deliberate, incremental changes and verify them with the test and lint commands when appropriate.\n")
	fmt.Fprintf(&b, "- Only modify files that fall under the allowed paths: %s.\n", allowedPathsText(in.Config.AllowedPaths))
	b.WriteString("- Read files before editing them to understand context.\n")
	fmt.Fprintf(&b, "- Update %s to mark tasks complete when you finish them.\n", in.BacklogPath)
	b.WriteString("- When the task is complete and the repository is ready to commit, call the finalize_task tool exactly once with a high-quality commit message.\n")
	b.WriteString("- Prefer running available project commands (lint, typecheck, test, build) before finalizing.\n")
	b.WriteString("- Do not assume state from previous runs; inspect the repository as needed.\n")
	return b.String()
}

// UserPrompt carries the task, the project prompt, the backlog and the available commands
func UserPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString("Next task to implement:\n")
	b.WriteString(in.Task.Description + "\n\n")
	fmt.Fprintf(&b, "Original task line: %s\n", orDefault(in.Task.RawLine, "(not available)"))
	fmt.Fprintf(&b, "Priority: %s\n", priorityText(in.Task.Priority))
	fmt.Fprintf(&b, "Tags: %s\n\n", orDefault(strings.Join(in.Task.Tags, ", "), "none"))
	fmt.Fprintf(&b, "Project prompt:\n%s\n\n", in.ProjectPrompt)
	fmt.Fprintf(&b, "Full task backlog:\n%s\n\n", in.Backlog)
	fmt.Fprintf(&b, "Available project commands:\n%s\n", commandList(in.Config))
	return b.String()
}

// PatchSystemPrompt sets the single-diff response contract of patch mode
func PatchSystemPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString("You are an agent that proposes ONE unified diff completing the requested task.\n\n")
	b.WriteString("Requirements:\n")
	b.WriteString("- Reply with the diff only: no descriptions, plans or code fences.\n")
	b.WriteString("- Start directly with \"--- \" for the first file; the diff must apply with 'git apply'.\n")
	b.WriteString("- Existing files: use 'a/<path>' and 'b/<path>'.\n")
	b.WriteString("- New files: use '/dev/null' for '---' and 'b/<path>' for '+++'.\n")
	b.WriteString("- Deleted files: use 'a/<path>' for '---' and '/dev/null' for '+++'.\n")
	b.WriteString("- Every hunk header must have the form @@ -start,count +start,count @@, e.g. @@ -1,3 +1,4 @@ or @@ -0,0 +1,5 @@ for a new file.\n")
	fmt.Fprintf(&b, "- Only touch files under the allowed paths: %s.\n", allowedPathsText(in.Config.AllowedPaths))
	fmt.Fprintf(&b, "- Keep the patch within %d changed lines.\n", in.Config.MaxChangedLines)
	b.WriteString("- Check the repository tree to decide whether a file is new before creating it.\n")
	return b.String()
}

// PatchPrompt carries the task context plus the repository tree for patch mode
func PatchPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString(UserPrompt(in))
	fmt.Fprintf(&b, "\nRepository tree (existing files):\n%s\n", in.RepoTree)
	b.WriteString("Reply with the diff only, starting with \"--- \".\n")
	return b.String()
}

// RepoTree renders the repository files as an indented list, skipping dot entries
func RepoTree(root string, maxDepth int) string {
	var b strings.Builder
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > maxDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			logging.Logger.Warn("Could not read directory", "dir", dir, "error", err)
			return
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			full := filepath.Join(dir, e.Name())
			rel, _ := filepath.Rel(root, full)
			rel = filepath.ToSlash(rel)
			if e.IsDir() {
				fmt.Fprintf(&b, "%s- %s/\n", strings.Repeat("  ", depth), rel)
				walk(full, depth+1)
				continue
			}
			fmt.Fprintf(&b, "%s- %s\n", strings.Repeat("  ", depth), rel)
		}
	}
	walk(root, 0)
	return b.String()
}

// PatchRetryPrompt reports why the previous patch was rejected
func PatchRetryPrompt(err error) string {
	return fmt.Sprintf("The previous patch was rejected:\n%v\n\nReply with a corrected unified diff for the current repository state.", err)
}

func allowedPathsText(paths []string) string {
	if len(paths) == 0 {
		return "(no restrictions)"
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "" {
			p = "/"
		}
		out[i] = p
	}
	return strings.Join(out, ", ")
}

func commandList(cfg *domain.AgentConfig) string {
	names := cfg.CommandNames()
	if len(names) == 0 {
		return "(no commands specified)"
	}
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("- %s: %s", name, cfg.Commands[name])
	}
	return strings.Join(lines, "\n")
}

func priorityText(p domain.Priority) string {
	if p == domain.PriorityNone {
		return "unspecified"
	}
	return p.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package config

import "path/filepath"

// Files obreiro reads and writes inside a project, relative to the repository root
const (
	DefaultConfigFile  = "ai/config.json"
	DefaultJournalFile = "ai/JOURNAL.md"
	DefaultPromptFile  = "ai/PROMPT.md"
	DefaultTasksFile   = "ai/TASKS.md"
)

// ProjectLayout resolves the per-project files of a repository
type ProjectLayout struct {
	ConfigFile  string
	JournalFile string
	PromptFile  string
	Root        string
	TasksFile   string
}

// NewProjectLayout returns the default layout rooted at root
func NewProjectLayout(root string) ProjectLayout {
	return ProjectLayout{
		ConfigFile:  DefaultConfigFile,
		JournalFile: DefaultJournalFile,
		PromptFile:  DefaultPromptFile,
		Root:        root,
		TasksFile:   DefaultTasksFile,
	}
}

// Abs returns the absolute path of a layout-relative file
func (l ProjectLayout) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

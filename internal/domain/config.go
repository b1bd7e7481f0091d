package domain

import (
	"slices"
	"strings"
)

// Agent configuration defaults
const (
	DefaultBranchPrefix    = "ai/"
	DefaultCommitFormat    = "feat: {task} [ai]"
	DefaultMaxChangedLines = 300
	DefaultMaxIterations   = 40
	DefaultModel           = "gpt-4o"
)

// StandardCommands are the quality gate names every project is expected to configure, in run order
var StandardCommands = []string{"lint", "typecheck", "test", "build"}

// AgentConfig is the validated agent configuration document (ai/config.json)
type AgentConfig struct {
	AllowedPaths    []string          `json:"allowedPaths" yaml:"allowedPaths"`
	BranchPrefix    string            `json:"branchPrefix" yaml:"branchPrefix"`
	Commands        map[string]string `json:"commands" yaml:"commands"`
	CommitFormat    string            `json:"commitFormat,omitempty" yaml:"commitFormat,omitempty"`
	MaxChangedLines int               `json:"maxChangedLines" yaml:"maxChangedLines"`
	MaxIterations   int               `json:"maxIterations,omitempty" yaml:"maxIterations,omitempty"`
	Model           string            `json:"model,omitempty" yaml:"model,omitempty"`
	Retry           int               `json:"retry" yaml:"retry"`
}

// ApplyDefaults fills optional fields that were left empty
func (c *AgentConfig) ApplyDefaults() {
	if c.BranchPrefix == "" {
		c.BranchPrefix = DefaultBranchPrefix
	}
	if c.CommitFormat == "" {
		c.CommitFormat = DefaultCommitFormat
	}
	if c.MaxChangedLines <= 0 {
		c.MaxChangedLines = DefaultMaxChangedLines
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Commands == nil {
		c.Commands = map[string]string{}
	}
}

// CommitMessage renders CommitFormat for a task description
func (c AgentConfig) CommitMessage(task string) string {
	format := c.CommitFormat
	if format == "" {
		format = DefaultCommitFormat
	}
	return strings.ReplaceAll(format, "{task}", task)
}

// CommandNames returns configured command names: standard gates first, then the rest sorted
func (c AgentConfig) CommandNames() []string {
	var names []string
	for _, name := range StandardCommands {
		if cmd, ok := c.Commands[name]; ok && strings.TrimSpace(cmd) != "" {
			names = append(names, name)
		}
	}

	var extra []string
	for name, cmd := range c.Commands {
		if slices.Contains(StandardCommands, name) || strings.TrimSpace(cmd) == "" {
			continue
		}
		extra = append(extra, name)
	}
	slices.Sort(extra)

	return append(names, extra...)
}

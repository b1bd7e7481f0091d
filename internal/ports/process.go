package ports

import (
	"context"
	"time"
)

// CommandRequest describes one shell command execution
type CommandRequest struct {
	Command   string
	Dir       string
	MaxOutput int
	Timeout   time.Duration
}

// CommandResult is what a finished command produced.
// Stdout and Stderr are truncated to the request's MaxOutput characters.
type CommandResult struct {
	Duration time.Duration
	ExitCode int
	Stderr   string
	Stdout   string
}

// CommandRunner executes shell commands with a hard timeout.
// A timeout is reported as *domain.CommandTimeoutError.
type CommandRunner interface {
	Run(ctx context.Context, req CommandRequest) (*CommandResult, error)
}

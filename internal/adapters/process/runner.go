package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
	"unicode/utf8"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// Limits applied when a request leaves them unset
const (
	DefaultMaxOutput = 8000
	DefaultTimeout   = 2 * time.Minute
)

// waitDelay bounds how long Wait blocks on pipes held open by orphaned children
const waitDelay = 2 * time.Second

// ShellRunner implements ports.CommandRunner by running commands through the system shell.
// On timeout the whole process group is killed.
type ShellRunner struct{}

// Compile-time interface verification
var _ ports.CommandRunner = (*ShellRunner)(nil)

// NewShellRunner creates a new ShellRunner
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// Run implements CommandRunner.Run. A non-zero exit status is not an error;
// it is reported through CommandResult.ExitCode.
func (r *ShellRunner) Run(ctx context.Context, req ports.CommandRequest) (*ports.CommandResult, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxOutput := req.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := shellCommand(runCtx, req.Command)
	cmd.Dir = req.Dir
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	stdout := &headBuffer{max: maxOutput}
	stderr := &headBuffer{max: maxOutput}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logging.Logger.Info("Running command", "command", req.Command, "dir", req.Dir, "timeout", timeout)
	start := time.Now()
	err := cmd.Run()

	result := &ports.CommandResult{
		Duration: time.Since(start),
		Stderr:   stderr.String(),
		Stdout:   stdout.String(),
	}

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		logging.Logger.Warn("Command timed out", "command", req.Command, "timeout", timeout)
		result.ExitCode = -1
		return result, &domain.CommandTimeoutError{Command: req.Command, Timeout: timeout}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logging.Logger.Debug("Command exited with non-zero status", "command", req.Command, "exit_code", result.ExitCode)
			return result, nil
		}
		return nil, fmt.Errorf("failed to run command: %w", err)
	}

	return result, nil
}

// headBuffer keeps the first max characters written to it and discards the rest
// while still accepting writes, so the child never blocks on a full pipe
type headBuffer struct {
	buf []byte
	max int
}

func (b *headBuffer) Write(p []byte) (int, error) {
	// Up to 4 bytes per character; String trims to exactly max characters
	limit := b.max * utf8.UTFMax
	if room := limit - len(b.buf); room > 0 {
		if len(p) <= room {
			b.buf = append(b.buf, p...)
		} else {
			b.buf = append(b.buf, p[:room]...)
		}
	}
	return len(p), nil
}

func (b *headBuffer) String() string {
	s := string(b.buf)
	if utf8.RuneCountInString(s) <= b.max {
		return s
	}
	runes := []rune(s)
	return string(runes[:b.max])
}

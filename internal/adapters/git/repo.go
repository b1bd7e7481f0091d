package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// runGit executes git in dir and returns its combined output
func runGit(ctx context.Context, dir, op string, args ...string) (string, error) {
	logging.Logger.Debug("Running git", "op", op, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		logging.Logger.Error("Git command failed", "op", op, "error", err, "output", string(output))
		return string(output), &domain.GitError{Args: args, Err: err, Op: op, Output: string(output)}
	}
	return string(output), nil
}

// gitOutput executes git in dir and returns stdout only, for commands whose output is parsed
func gitOutput(ctx context.Context, dir, op string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", &domain.GitError{Args: args, Err: err, Op: op, Output: stderr.String()}
	}
	return string(output), nil
}

// exitCode returns the process exit code carried by err, or -1
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// RepoRoot returns the top-level directory of the repository containing dir
func RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := gitOutput(ctx, dir, "rev-parse", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s: %w", dir, err)
	}
	return strings.TrimSpace(out), nil
}

// parseStatus converts `git status --porcelain` output into tracked and untracked paths
func parseStatus(porcelain string) (uncommitted, untracked []string) {
	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		if strings.HasPrefix(line, "??") {
			untracked = append(untracked, path)
		} else {
			uncommitted = append(uncommitted, path)
		}
	}
	return uncommitted, untracked
}

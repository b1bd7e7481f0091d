//go:build windows

package process

import (
	"context"
	"os/exec"
)

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	return exec.CommandContext(ctx, "cmd", "/C", command)
}

// configureProcessGroup keeps the default behaviour: only the direct child is killed
func configureProcessGroup(cmd *exec.Cmd) {}

package git

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// ApplyPatch implements PatchApplier.ApplyPatch.
// The patch goes through a temporary file that is removed on every path.
// When git rejects it, `git apply --check` output is attached as diagnostics.
func (r *CLIRepository) ApplyPatch(ctx context.Context, patch string, strip int) error {
	tmpPath, cleanup, err := writePatchFile(patch)
	if err != nil {
		return err
	}
	defer cleanup()

	logging.Logger.Info("Applying patch", "lines", strings.Count(patch, "\n"), "strip", strip)
	if _, applyErr := runGit(ctx, r.dir, "apply", "apply", stripFlag(strip), "--whitespace=nowarn", tmpPath); applyErr != nil {
		diagnostics, _ := runGit(ctx, r.dir, "apply", "apply", stripFlag(strip), "--check", "--verbose", tmpPath)
		return &domain.ApplyError{
			Diagnostics: strings.TrimSpace(diagnostics),
			Err:         applyErr,
			Patch:       patch,
		}
	}

	logging.Logger.Info("Patch applied successfully")
	return nil
}

// PatchPaths implements PatchApplier.PatchPaths.
// Paths come from `git apply --numstat`, so they are exactly the ones git would write,
// including both sides of renames and copies.
func (r *CLIRepository) PatchPaths(ctx context.Context, patch string, strip int) ([]string, error) {
	tmpPath, cleanup, err := writePatchFile(patch)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := gitOutput(ctx, r.dir, "apply", "apply", stripFlag(strip), "--numstat", "-z", tmpPath)
	if err != nil {
		return nil, err
	}
	return parseNumstat(out), nil
}

func stripFlag(strip int) string {
	return "-p" + strconv.Itoa(strip)
}

// writePatchFile stores patch, LF-terminated, in a temporary file.
// The returned cleanup removes it.
func writePatchFile(patch string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "obreiro-*.patch")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary patch file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logging.Logger.Warn("Failed to remove temporary patch file", "path", tmpPath, "error", err)
		}
	}

	normalized := strings.ReplaceAll(patch, "\r\n", "\n")
	if !strings.HasSuffix(normalized, "\n") {
		normalized += "\n"
	}
	if _, err := tmp.WriteString(normalized); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temporary patch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temporary patch file: %w", err)
	}
	return tmpPath, cleanup, nil
}

// parseNumstat reads `git apply --numstat -z` output. Each entry is
// "added\tdeleted\tpath\0", or "added\tdeleted\t\0old\0new\0" for renames and copies.
func parseNumstat(out string) []string {
	fields := strings.Split(out, "\x00")
	var paths []string
	for i := 0; i < len(fields); i++ {
		parts := strings.SplitN(fields[i], "\t", 3)
		if len(parts) != 3 {
			continue
		}
		if parts[2] != "" {
			paths = append(paths, parts[2])
			continue
		}
		if i+2 < len(fields) {
			paths = append(paths, fields[i+1], fields[i+2])
			i += 2
		}
	}
	return paths
}

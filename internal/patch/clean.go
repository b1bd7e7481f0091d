package patch

import (
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// Clean extracts the unified diff from a model reply.
// Line endings become LF, anything before the first "--- " line is dropped
// and a closing code fence ends the diff.
func Clean(raw string) (string, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "--- ") {
			start = i
			break
		}
	}
	if start == -1 {
		return "", &domain.StructureError{Reason: "no diff content found (expected a line starting with \"--- \")"}
	}
	if start > 0 {
		logging.Logger.Debug("Dropping non-diff preamble", "lines", start)
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			end = i
			break
		}
	}

	body := strings.TrimRight(strings.Join(lines[start:end], "\n"), "\n")
	return body + "\n", nil
}

// Package patch parses model-produced unified diffs and checks them against the
// working tree before they are handed to git.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
)

// LargePatchLines is the line count above which a patch is flagged as large
const LargePatchLines = 500

var hunkHeader = regexp.MustCompile(`^@@ -\d+,\d+ \+\d+,\d+ @@`)

// Patch is a cleaned unified diff together with what it changes.
// Strip is the number of leading path components git must drop (git apply -p).
type Patch struct {
	ChangedLines int
	Changes      []domain.PatchChange
	Strip        int
	Text         string
	Warnings     []string
}

// Paths returns every repository path touched by the patch, in order of appearance
func (p *Patch) Paths() []string {
	var paths []string
	for _, c := range p.Changes {
		paths = append(paths, c.Paths()...)
	}
	return paths
}

// extended headers git honours that never reach the --- / +++ pairs
var unsupportedHeaders = []string{"rename from ", "rename to ", "copy from ", "copy to ", "GIT binary patch", "Binary files "}

type fileHeader struct {
	line    int
	newPath string
	oldPath string
}

// Parse extracts the file-level changes of a cleaned unified diff.
// Structural defects are reported as *domain.StructureError.
func Parse(text string) (*Patch, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	p := &Patch{Text: text}

	var headers []fileHeader
	section, sectionHasHeaders := 0, false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.HasPrefix(line, "--- ") && i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ") {
			headers = append(headers, fileHeader{line: i + 1, newPath: headerPath(lines[i+1][4:]), oldPath: headerPath(line[4:])})
			sectionHasHeaders = true
			i++
			continue
		}

		if strings.HasPrefix(line, "diff --git ") {
			if section > 0 && !sectionHasHeaders {
				return nil, missingFileHeaders(section)
			}
			section, sectionHasHeaders = i+1, false
			continue
		}

		for _, prefix := range unsupportedHeaders {
			if strings.HasPrefix(line, prefix) {
				return nil, &domain.StructureError{
					Line:   i + 1,
					Reason: fmt.Sprintf("unsupported extended header %q (write renames and copies as --- / +++ file sections, binary changes are not supported)", line),
				}
			}
		}

		if strings.HasPrefix(line, "@@") {
			if !hunkHeader.MatchString(line) {
				return nil, &domain.StructureError{
					Line:   i + 1,
					Reason: fmt.Sprintf("invalid hunk header %q (expected @@ -start,count +start,count @@)", line),
				}
			}
			continue
		}

		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			p.ChangedLines++
		}
	}
	if section > 0 && !sectionHasHeaders {
		return nil, missingFileHeaders(section)
	}

	strip, err := stripLevel(headers)
	if err != nil {
		return nil, err
	}
	p.Strip = strip

	for _, h := range headers {
		if change, ok := classify(stripPath(h.oldPath, strip), stripPath(h.newPath, strip)); ok {
			p.Changes = append(p.Changes, change)
		}
	}

	if len(p.Changes) == 0 {
		return nil, &domain.StructureError{Reason: "missing --- and +++ file headers"}
	}

	if last := lines[len(lines)-1]; looksTruncated(last) {
		p.Warnings = append(p.Warnings, fmt.Sprintf("patch might be truncated, last line is not diff content: %q", last))
	}
	if len(lines) > LargePatchLines {
		p.Warnings = append(p.Warnings, fmt.Sprintf("large patch: %d lines", len(lines)))
	}

	return p, nil
}

func missingFileHeaders(line int) error {
	return &domain.StructureError{
		Line:   line,
		Reason: "file section has no --- and +++ headers (mode-only, empty-file, rename and copy sections are not supported)",
	}
}

// stripLevel decides the git apply -p value: 1 when headers carry the a/ b/ prefixes,
// 0 when they name paths directly. Mixing both styles is a structural defect.
func stripLevel(headers []fileHeader) (int, error) {
	prefixed, bare := 0, 0
	for _, h := range headers {
		for _, p := range []string{h.oldPath, h.newPath} {
			if p == "" || p == domain.DevNull {
				continue
			}
			if strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
				prefixed++
			} else {
				bare++
			}
			if prefixed > 0 && bare > 0 {
				return 0, &domain.StructureError{
					Line:   h.line,
					Reason: "file headers mix a/ b/ prefixed and bare paths",
				}
			}
		}
	}
	if prefixed > 0 {
		return 1, nil
	}
	return 0, nil
}

// OversizeWarning describes a patch that changes more lines than the configured limit
func OversizeWarning(changed, limit int) string {
	return fmt.Sprintf("patch changes %d lines, above the configured limit of %d", changed, limit)
}

// headerPath takes the first whitespace-separated token of a header path,
// dropping any trailing timestamp
func headerPath(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// stripPath drops the leading components git removes for the given -p value
func stripPath(p string, strip int) string {
	if p == domain.DevNull {
		return p
	}
	for ; strip > 0; strip-- {
		i := strings.Index(p, "/")
		if i < 0 {
			return p
		}
		p = p[i+1:]
	}
	return p
}

func classify(oldPath, newPath string) (domain.PatchChange, bool) {
	oldReal := oldPath != "" && oldPath != domain.DevNull
	newReal := newPath != "" && newPath != domain.DevNull

	switch {
	case oldPath == domain.DevNull && newReal:
		return domain.PatchChange{Kind: domain.ChangeCreate, NewPath: newPath}, true
	case newPath == domain.DevNull && oldReal:
		return domain.PatchChange{Kind: domain.ChangeDelete, OldPath: oldPath}, true
	case oldReal && newReal && oldPath != newPath:
		return domain.PatchChange{Kind: domain.ChangeRename, OldPath: oldPath, NewPath: newPath}, true
	case oldReal && newReal:
		return domain.PatchChange{Kind: domain.ChangeModify, OldPath: oldPath, NewPath: newPath}, true
	}
	return domain.PatchChange{}, false
}

func looksTruncated(last string) bool {
	if strings.TrimSpace(last) == "" {
		return false
	}
	for _, prefix := range []string{" ", "+", "-", "@@", `\`} {
		if strings.HasPrefix(last, prefix) {
			return false
		}
	}
	return true
}

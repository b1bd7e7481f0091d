// Package sandbox confines model-requested paths to the repository root and the
// configured allowlist.
package sandbox

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// Resolve converts a model-supplied path into an absolute path inside the session root.
// With enforceAllowed the normalized path must also fall under one of the allowed prefixes.
func Resolve(session *domain.SessionContext, input string, enforceAllowed bool) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", &domain.PathError{Kind: domain.PathEmpty, Path: input}
	}

	rel := normalize(trimmed)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		logging.Logger.Warn("Rejected path outside repository root", "path", input)
		return "", &domain.PathError{Kind: domain.PathOutsideRoot, Path: input}
	}

	root := filepath.Clean(session.RepoRoot)
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if !Within(root, abs) {
		return "", &domain.PathError{Kind: domain.PathOutsideRoot, Path: input}
	}

	if enforceAllowed && !IsAllowed(rel, session.AllowedPaths) {
		logging.Logger.Warn("Rejected path outside allowlist", "path", rel, "allowed", session.AllowedPaths)
		return "", &domain.PathError{Kind: domain.PathNotAllowed, Path: rel}
	}

	return abs, nil
}

// Relative returns the slash-separated path of abs relative to the session root
func Relative(session *domain.SessionContext, abs string) string {
	rel, err := filepath.Rel(session.RepoRoot, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// Within reports whether target is root or a segment-bounded descendant of it
func Within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." && !strings.HasPrefix(rel, "../") && !filepath.IsAbs(rel)
}

// IsAllowed reports whether a normalized relative path falls under an allowed prefix.
// An empty allowlist, or an empty prefix, allows everything.
func IsAllowed(rel string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, prefix := range allowed {
		prefix = NormalizePrefix(prefix)
		if prefix == "" || rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}

// NormalizePrefix converts an allowlist entry into the form IsAllowed compares against
func NormalizePrefix(prefix string) string {
	return normalize(strings.TrimSpace(prefix))
}

// NormalizeAllowedPaths normalizes every allowlist entry, dropping duplicates
func NormalizeAllowedPaths(allowed []string) []string {
	seen := make(map[string]bool, len(allowed))
	result := make([]string, 0, len(allowed))
	for _, p := range allowed {
		n := NormalizePrefix(p)
		if seen[n] {
			continue
		}
		seen[n] = true
		result = append(result, n)
	}
	return result
}

// normalize converts separators to '/', strips leading separators and cleans the path.
// The repository root itself normalizes to "".
func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

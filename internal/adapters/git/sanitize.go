package git

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// validBranchNameChars matches valid characters for git branch names
// Allows: alphanumeric, hyphens, underscores, dots, slashes
var validBranchNameChars = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// nonSlugChars matches every run of characters that cannot appear in a slug
var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// MaxSlugLength caps the task-derived part of a branch name
const MaxSlugLength = 64

// FallbackSlug is used when a description has no usable characters
const FallbackSlug = "task"

// Slugify turns a task description into a branch-safe slug:
// lowercase, non-alphanumeric runs collapsed to one hyphen, trimmed and capped.
func Slugify(text string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// ValidateBranchName checks a full branch name
func ValidateBranchName(name string) error {
	return validateBranchName(name)
}

// ValidateBranchPrefix checks that prefix followed by a slug forms a valid branch name
func ValidateBranchPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if err := validateBranchName(prefix + FallbackSlug); err != nil {
		return fmt.Errorf("branch prefix %q: %w", prefix, err)
	}
	return nil
}

// validateBranchName checks if a branch name is valid according to git rules.
// Stricter than git-check-ref-format: shell metacharacters are rejected too.
func validateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("branch name cannot start with '.'")
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("branch name cannot start with '/'")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name cannot start with '-'")
	}

	if strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch name cannot end with '.lock'")
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name cannot end with '.'")
	}
	if strings.HasSuffix(name, "/") {
		return fmt.Errorf("branch name cannot end with '/'")
	}
	if strings.HasSuffix(name, "-") {
		return fmt.Errorf("branch name cannot end with '-'")
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("branch name cannot contain '//'")
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("branch name cannot contain '@{'")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("branch name cannot contain control characters")
		}
	}

	if !validBranchNameChars.MatchString(name) {
		return fmt.Errorf("branch name contains invalid characters (only alphanumeric, '.', '_', '-', '/' allowed)")
	}

	return nil
}

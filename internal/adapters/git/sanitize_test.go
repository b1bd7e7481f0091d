package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Add dark mode", "add-dark-mode"},
		{"  Fix: crash on /login (iOS)!  ", "fix-crash-on-login-ios"},
		{"already-slugged", "already-slugged"},
		{"UPPER_case 123", "upper-case-123"},
		{"àccents ünicode", "ccents-nicode"},
		{"!!!", "task"},
		{"", "task"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_CapsLength(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 30))

	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.NoError(t, validateBranchName("ai/"+slug))
}

func TestValidateBranchPrefix(t *testing.T) {
	assert.NoError(t, ValidateBranchPrefix(""))
	assert.NoError(t, ValidateBranchPrefix("ai/"))
	assert.NoError(t, ValidateBranchPrefix("bots/agent-"))

	for _, prefix := range []string{"/ai", "ai//", "ai..", "my prefix/", ".hidden/"} {
		err := ValidateBranchPrefix(prefix)
		require.Error(t, err, prefix)
		assert.Contains(t, err.Error(), "branch prefix")
	}
}

func TestValidateBranchName_EmptyName(t *testing.T) {
	err := validateBranchName("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateBranchName_InvalidAffixes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"starts with dot", ".hidden", "start with '.'"},
		{"starts with slash", "/path", "start with '/'"},
		{"starts with hyphen", "-feature", "start with '-'"},
		{"ends with .lock", "branch.lock", ".lock"},
		{"ends with dot", "branch.", "end with '.'"},
		{"ends with slash", "branch/", "end with '/'"},
		{"ends with hyphen", "branch-", "end with '-'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_InvalidSequences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"double dot", "feature..branch", "'..'"},
		{"double slash", "feature//branch", "'//'"},
		{"at brace", "branch@{0}", "'@{'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_ControlCharacters(t *testing.T) {
	err := validateBranchName("feature\x00branch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "control characters")
}

func TestValidateBranchName_InvalidCharacters(t *testing.T) {
	for _, input := range []string{"feature branch", "feature~1", "feature^1", "feature:1", "feature?", "feature*", "feature[0]", "feature\\path", "@"} {
		t.Run(input, func(t *testing.T) {
			err := validateBranchName(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid characters")
		})
	}
}

func TestValidateBranchName_ValidNames(t *testing.T) {
	for _, input := range []string{"main", "ai/add-tests", "fix_bug_123", "release-1.0.0", "user/feature.name", "a", "MixedCase123"} {
		t.Run(input, func(t *testing.T) {
			assert.NoError(t, validateBranchName(input))
		})
	}
}

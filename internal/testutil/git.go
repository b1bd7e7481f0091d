// Package testutil provides real git repositories for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestRepo is a working git repository with an initial commit on main.
// When created with NewTestRepoWithOrigin it also has a bare "origin" remote.
type TestRepo struct {
	BareRepoPath string
	Path         string
	tb           testing.TB
}

// NewTestRepo creates a repository with one commit (README.md) on branch main
//
//	tb.TempDir()/
//	└── repo/
func NewTestRepo(tb testing.TB) *TestRepo {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "repo")
	if err := os.MkdirAll(path, 0755); err != nil {
		tb.Fatalf("Failed to create repo dir: %v", err)
	}

	runGitCommand(tb, path, "init")
	configure(tb, path)

	r := &TestRepo{Path: path, tb: tb}
	r.WriteFile("README.md", "# Test Repo\n")
	runGitCommand(tb, path, "add", "README.md")
	runGitCommand(tb, path, "commit", "-m", "Initial commit")
	runGitCommand(tb, path, "branch", "-M", "main")

	return r
}

// NewTestRepoWithOrigin creates a bare origin and a clone tracking it
//
//	tb.TempDir()/
//	├── bare/
//	└── clone/
func NewTestRepoWithOrigin(tb testing.TB) *TestRepo {
	tb.Helper()

	baseDir := tb.TempDir()
	bare := filepath.Join(baseDir, "bare")
	clone := filepath.Join(baseDir, "clone")

	runGitCommand(tb, baseDir, "init", "--bare", bare)
	runGitCommand(tb, baseDir, "clone", bare, clone)
	configure(tb, clone)

	r := &TestRepo{BareRepoPath: bare, Path: clone, tb: tb}
	r.WriteFile("README.md", "# Test Repo\n")
	runGitCommand(tb, clone, "add", "README.md")
	runGitCommand(tb, clone, "commit", "-m", "Initial commit")
	runGitCommand(tb, clone, "branch", "-M", "main")
	runGitCommand(tb, clone, "push", "-u", "origin", "main")

	return r
}

// WriteFile writes content to a repository-relative path, creating parents
func (r *TestRepo) WriteFile(rel, content string) string {
	r.tb.Helper()

	p := filepath.Join(r.Path, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		r.tb.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		r.tb.Fatalf("Failed to write %s: %v", rel, err)
	}
	return p
}

// ReadFile returns the content of a repository-relative path
func (r *TestRepo) ReadFile(rel string) string {
	r.tb.Helper()

	data, err := os.ReadFile(filepath.Join(r.Path, filepath.FromSlash(rel)))
	if err != nil {
		r.tb.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// CommitAll stages everything and commits it
func (r *TestRepo) CommitAll(message string) {
	r.tb.Helper()
	runGitCommand(r.tb, r.Path, "add", "-A")
	runGitCommand(r.tb, r.Path, "commit", "-m", message)
}

// CreateBranch creates a branch without checking it out
func (r *TestRepo) CreateBranch(name string) {
	r.tb.Helper()
	runGitCommand(r.tb, r.Path, "branch", name)
}

// Git runs a git command in the repository and returns its trimmed output
func (r *TestRepo) Git(args ...string) string {
	r.tb.Helper()
	return runGitCommand(r.tb, r.Path, args...)
}

// CommitCount returns the number of commits reachable from HEAD
func (r *TestRepo) CommitCount() string {
	r.tb.Helper()
	return r.Git("rev-list", "--count", "HEAD")
}

func configure(tb testing.TB, dir string) {
	tb.Helper()
	runGitCommand(tb, dir, "config", "user.email", "test@example.com")
	runGitCommand(tb, dir, "config", "user.name", "Test User")
	runGitCommand(tb, dir, "config", "commit.gpgsign", "false")
}

// RunGitCommand executes a git command in dir (exported for tests)
func RunGitCommand(tb testing.TB, dir string, args ...string) string {
	tb.Helper()
	return runGitCommand(tb, dir, args...)
}

func runGitCommand(tb testing.TB, dir string, args ...string) string {
	tb.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		tb.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

package cmd

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/testutil"
)

const validConfig = `{
	"allowedPaths": ["scripts"],
	"branchPrefix": "ai/",
	"commands": {"lint": "true"},
	"maxChangedLines": 300,
	"retry": 2
}`

// runCLI parses args the way main does and runs the selected command against repo.
// The returned error is what main turns into exit code 1.
func runCLI(t *testing.T, repo string, args ...string) error {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())

	var cli CLI
	cli.SetSettings(&config.Settings{})
	parser, err := kong.New(&cli,
		kong.Name("obreiro"),
		kong.Vars{"version": "test"},
		kong.Bind(&cli),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected exit with code %d", code)
		}),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(append([]string{"--repo", repo}, args...))
	t.Cleanup(func() { _ = cli.Close() })
	if err != nil {
		return err
	}
	return kctx.Run()
}

// newReadyRepo returns a repository with a valid configuration and backlog
func newReadyRepo(t *testing.T, commands string) *testutil.TestRepo {
	t.Helper()
	repo := testutil.NewTestRepo(t)
	repo.WriteFile("scripts/.keep", "")
	repo.WriteFile("ai/TASKS.md", "- [ ] Add notes\n")
	cfg := validConfig
	if commands != "" {
		cfg = strings.Replace(cfg, `{"lint": "true"}`, commands, 1)
	}
	repo.WriteFile("ai/config.json", cfg)
	repo.CommitAll("Add agent files")
	return repo
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:   "valid config succeeds",
			config: validConfig,
		},
		{
			name:    "missing fields fail",
			config:  `{"branchPrefix": "ai/"}`,
			wantErr: "is invalid",
		},
		{
			name:    "malformed json fails",
			config:  `{"allowedPaths": [`,
			wantErr: "is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewTestRepo(t)
			repo.WriteFile("scripts/.keep", "")
			repo.WriteFile("ai/config.json", tt.config)

			err := runCLI(t, repo.Path, "config", "validate")

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate_ExplicitPathJSON(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	path := repo.WriteFile("other.json", `{"retry": -1}`)

	err := runCLI(t, repo.Path, "config", "validate", "--format", "json", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestGates(t *testing.T) {
	tests := []struct {
		name     string
		commands string
		wantErr  string
	}{
		{
			name:     "all gates pass",
			commands: `{"lint": "true", "test": "exit 0"}`,
		},
		{
			name:     "one failing gate fails the command",
			commands: `{"lint": "true", "test": "false"}`,
			wantErr:  "quality gates failed: test",
		},
		{
			name:     "every failing gate is named",
			commands: `{"lint": "exit 3", "test": "false"}`,
			wantErr:  "quality gates failed: lint, test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newReadyRepo(t, tt.commands)

			err := runCLI(t, repo.Path, "gates")

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGates_InvalidConfigFails(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteFile("ai/config.json", `{"branchPrefix": "ai/"}`)

	err := runCLI(t, repo.Path, "gates")

	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		remove  string
		wantErr bool
	}{
		{
			name: "ready project succeeds",
		},
		{
			name:    "missing backlog fails",
			remove:  "ai/TASKS.md",
			wantErr: true,
		},
		{
			name:    "missing config fails",
			remove:  "ai/config.json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newReadyRepo(t, "")
			if tt.remove != "" {
				repo.Git("rm", "-q", tt.remove)
			}

			err := runCLI(t, repo.Path, "status", "--format", "json")

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "project is not ready")
		})
	}
}

func TestBranchesCleanup_DryRunKeepsBranches(t *testing.T) {
	repo := newReadyRepo(t, "")
	repo.CreateBranch("ai/first")
	repo.CreateBranch("ai/second")
	repo.CreateBranch("feature/other")

	err := runCLI(t, repo.Path, "branches", "cleanup", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, "ai/first\nai/second", repo.Git("branch", "--list", "ai/*", "--format=%(refname:short)"))
	assert.Equal(t, "feature/other", repo.Git("branch", "--list", "feature/*", "--format=%(refname:short)"))
}

func TestBranchesCleanup_DryRunKeepsCurrentBranch(t *testing.T) {
	repo := newReadyRepo(t, "")
	repo.Git("checkout", "-q", "-b", "ai/current")
	repo.CreateBranch("ai/stale")

	err := runCLI(t, repo.Path, "branches", "cleanup", "--dry-run", "--format", "json")

	require.NoError(t, err)
	assert.Equal(t, "ai/current\nai/stale", repo.Git("branch", "--list", "ai/*", "--format=%(refname:short)"))
}

func TestBranchesCleanup_YesDeletesAllButCurrent(t *testing.T) {
	repo := newReadyRepo(t, "")
	repo.CreateBranch("ai/first")
	repo.CreateBranch("ai/second")
	repo.CreateBranch("feature/other")

	err := runCLI(t, repo.Path, "branches", "cleanup", "--yes")

	require.NoError(t, err)
	assert.Empty(t, repo.Git("branch", "--list", "ai/*", "--format=%(refname:short)"))
	assert.Equal(t, "feature/other", repo.Git("branch", "--list", "feature/*", "--format=%(refname:short)"))
}

package patch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/obreiro/internal/domain"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("content\n"), 0644))
}

func issuesOf(t *testing.T, err error) []domain.PatchIssue {
	t.Helper()
	var validationErr *domain.PatchValidationError
	require.True(t, errors.As(err, &validationErr), "expected PatchValidationError, got %v", err)
	return validationErr.Issues
}

func TestValidate_CreateOfExistingFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/new.ts")

	err := Validate([]domain.PatchChange{{Kind: domain.ChangeCreate, NewPath: "src/new.ts"}}, root)

	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "src/new.ts", issues[0].Path)
}

func TestValidate_ModifyOfMissingFile(t *testing.T) {
	root := t.TempDir()

	err := Validate([]domain.PatchChange{{Kind: domain.ChangeModify, OldPath: "src/missing.ts", NewPath: "src/missing.ts"}}, root)

	issues := issuesOf(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "src/missing.ts", issues[0].Path)
}

func TestValidate_ConflictFreePatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts")
	writeFile(t, root, "src/old.ts")
	writeFile(t, root, "src/from.ts")

	err := Validate([]domain.PatchChange{
		{Kind: domain.ChangeCreate, NewPath: "src/brand-new.ts"},
		{Kind: domain.ChangeModify, OldPath: "src/app.ts", NewPath: "src/app.ts"},
		{Kind: domain.ChangeDelete, OldPath: "src/old.ts"},
		{Kind: domain.ChangeRename, OldPath: "src/from.ts", NewPath: "src/to.ts"},
	}, root)

	assert.NoError(t, err)
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "exists.txt")
	writeFile(t, root, "dest.txt")

	err := Validate([]domain.PatchChange{
		{Kind: domain.ChangeCreate, NewPath: "exists.txt"},
		{Kind: domain.ChangeDelete, OldPath: "gone.txt"},
		{Kind: domain.ChangeRename, OldPath: "missing.txt", NewPath: "dest.txt"},
	}, root)

	issues := issuesOf(t, err)
	require.Len(t, issues, 4)
	assert.Equal(t, "exists.txt", issues[0].Path)
	assert.Equal(t, "gone.txt", issues[1].Path)
	assert.Equal(t, "missing.txt", issues[2].Path)
	assert.Equal(t, "dest.txt", issues[3].Path)
	assert.Contains(t, issues[3].Reason, "rename destination")
}

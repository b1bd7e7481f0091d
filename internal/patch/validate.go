package patch

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
)

// Validate checks every change against the files under root and returns all
// conflicts at once as a *domain.PatchValidationError
func Validate(changes []domain.PatchChange, root string) error {
	var issues []domain.PatchIssue

	for _, c := range changes {
		switch c.Kind {
		case domain.ChangeCreate:
			if exists(root, c.NewPath) {
				issues = append(issues, domain.PatchIssue{Path: c.NewPath, Reason: "already exists but the patch treats it as new"})
			}
		case domain.ChangeModify, domain.ChangeDelete:
			if !exists(root, c.OldPath) {
				issues = append(issues, domain.PatchIssue{Path: c.OldPath, Reason: "does not exist in the repository"})
			}
		case domain.ChangeRename:
			if !exists(root, c.OldPath) {
				issues = append(issues, domain.PatchIssue{Path: c.OldPath, Reason: "does not exist in the repository"})
			}
			if exists(root, c.NewPath) {
				issues = append(issues, domain.PatchIssue{Path: c.NewPath, Reason: "rename destination already exists"})
			}
		}
	}

	if len(issues) > 0 {
		logging.Logger.Warn("Patch conflicts with repository state", "issues", len(issues))
		return &domain.PatchValidationError{Issues: issues}
	}
	return nil
}

func exists(root, rel string) bool {
	_, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

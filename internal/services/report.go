package services

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// ReportService builds the project status report
type ReportService struct {
	backlog *BacklogService
	configs *ConfigService
	layout  config.ProjectLayout
	tree    ports.WorkingTree
}

// NewReportService creates a new ReportService
func NewReportService(layout config.ProjectLayout, tree ports.WorkingTree, configs *ConfigService, backlog *BacklogService) *ReportService {
	return &ReportService{
		backlog: backlog,
		configs: configs,
		layout:  layout,
		tree:    tree,
	}
}

// Build gathers every report section concurrently.
// Section failures are recorded in the report; only context cancellation returns an error.
func (s *ReportService) Build(ctx context.Context) (*domain.ProjectReport, error) {
	report := &domain.ProjectReport{RepoRoot: s.layout.Root}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		status, err := s.tree.Status(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Logger.Debug("Failed to read git status", "error", err)
			report.GitErr = err.Error()
			return nil
		}
		report.Git = status
		return nil
	})

	g.Go(func() error {
		doc, err := s.backlog.Load()
		if err != nil {
			logging.Logger.Debug("Failed to load backlog", "error", err)
			report.BacklogErr = err.Error()
			return nil
		}
		stats := doc.Stats()
		report.Backlog = &stats
		if task, ok := doc.HighestPriority(); ok {
			report.NextTask = &task
		}
		return nil
	})

	g.Go(func() error {
		report.Config = s.configs.ValidateFile(s.layout.Abs(s.layout.ConfigFile), s.layout.Root)
		return nil
	})

	g.Go(func() error {
		report.Files = s.checkFiles()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Logger.Debug("Project report built",
		"config_valid", report.Config.Valid(),
		"healthy", report.Healthy())
	return report, nil
}

func (s *ReportService) checkFiles() []domain.FileCheck {
	required := []string{s.layout.ConfigFile, s.layout.TasksFile}
	checks := make([]domain.FileCheck, 0, len(required))
	for _, rel := range required {
		_, err := os.Stat(s.layout.Abs(rel))
		checks = append(checks, domain.FileCheck{
			Exists: err == nil,
			Path:   rel,
		})
	}
	return checks
}

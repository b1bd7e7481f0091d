package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/obreiro/internal/theme"
)

// StatusCmd prints the project readiness report
type StatusCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the status command. Exits nonzero when the project is not ready for a run.
func (s *StatusCmd) Run(cli *CLI) error {
	report, err := cli.Container.ReportService.Build(context.Background())
	if err != nil {
		return err
	}

	if s.Format == formatJSON {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Println(theme.TitleStyle.Render(report.RepoRoot))
		fmt.Println()

		fmt.Println(theme.SubtitleStyle.Render("Git"))
		switch {
		case report.Git != nil:
			state := theme.SuccessStyle.Render("clean")
			if !report.Git.Clean {
				state = theme.WarningStyle.Render(fmt.Sprintf("%d changed, %d untracked", len(report.Git.Uncommitted), len(report.Git.Untracked)))
			}
			fmt.Printf("  %s %s\n", theme.BranchStyle.Render(report.Git.Branch), state)
		default:
			fmt.Printf("  %s\n", theme.ErrorStyle.Render(report.GitErr))
		}

		fmt.Println(theme.SubtitleStyle.Render("Backlog"))
		switch {
		case report.Backlog != nil:
			fmt.Printf("  %d/%d completed, %d pending\n", report.Backlog.Completed, report.Backlog.Total, report.Backlog.Pending)
			if report.NextTask != nil {
				fmt.Printf("  next: %s %s\n", report.NextTask.Description,
					theme.PriorityStyle(report.NextTask.Priority).Render("("+report.NextTask.Priority.String()+")"))
			}
		default:
			fmt.Printf("  %s\n", theme.ErrorStyle.Render(report.BacklogErr))
		}

		fmt.Println(theme.SubtitleStyle.Render("Config"))
		if report.Config.Valid() {
			fmt.Printf("  %s valid\n", theme.SuccessStyle.Render(theme.IconCheck))
		}
		for _, e := range report.Config.Errors {
			fmt.Printf("  %s %s\n", theme.FailureStyle.Render(theme.IconCross), e)
		}
		for _, w := range report.Config.Warnings {
			fmt.Printf("  %s %s\n", theme.WarningStyle.Render("!"), w)
		}

		fmt.Println(theme.SubtitleStyle.Render("Files"))
		for _, f := range report.Files {
			icon := theme.SuccessStyle.Render(theme.IconCheck)
			if !f.Exists {
				icon = theme.FailureStyle.Render(theme.IconCross)
			}
			fmt.Printf("  %s %s\n", icon, f.Path)
		}
	}

	if !report.Healthy() {
		return fmt.Errorf("project is not ready: fix the configuration errors or missing files above")
	}
	return nil
}

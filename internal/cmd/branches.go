package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/theme"
)

// BranchesCmd manages agent branches
type BranchesCmd struct {
	Cleanup BranchesCleanupCmd `cmd:"cleanup" help:"Delete agent branches except the current one"`
	List    BranchesListCmd    `cmd:"list" help:"List agent branches" default:"1"`
}

// BranchesListCmd lists local branches carrying the configured prefix
type BranchesListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (b *BranchesListCmd) Run(cli *CLI) error {
	cfg, _, err := cli.Container.LoadAgentConfig()
	if err != nil {
		return err
	}

	branches, err := cli.Container.NewWorkflowService(cfg).Branches(context.Background())
	if err != nil {
		return err
	}

	if b.Format == formatJSON {
		if branches == nil {
			branches = []string{}
		}
		return printJSON(branches)
	}
	if len(branches) == 0 {
		fmt.Println(theme.MutedStyle.Render(fmt.Sprintf("No branches with prefix %q", cfg.BranchPrefix)))
		return nil
	}
	for _, branch := range branches {
		fmt.Println(theme.BranchStyle.Render(branch))
	}
	return nil
}

// BranchesCleanupCmd deletes agent branches
type BranchesCleanupCmd struct {
	DryRun bool   `help:"Show what would be deleted without deleting" name:"dry-run"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Yes    bool   `help:"Skip the confirmation prompt" short:"y"`
}

// Run executes the cleanup command
func (b *BranchesCleanupCmd) Run(cli *CLI) error {
	ctx := context.Background()

	cfg, _, err := cli.Container.LoadAgentConfig()
	if err != nil {
		return err
	}
	workflow := cli.Container.NewWorkflowService(cfg)

	if !b.DryRun && !b.Yes {
		branches, err := workflow.Branches(ctx)
		if err != nil {
			return err
		}
		if len(branches) == 0 {
			fmt.Println(theme.MutedStyle.Render("Nothing to clean up"))
			return nil
		}

		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %d branch(es) matching %s*?", len(branches), cfg.BranchPrefix)).
					Description("Unmerged work on these branches will be lost. The current branch is kept.").
					Value(&confirmed).
					Affirmative("Delete").
					Negative("Keep"),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	results, err := workflow.Cleanup(ctx, b.DryRun)
	if err != nil {
		return err
	}

	if b.Format == formatJSON {
		return printJSON(results)
	}

	tw := newTable(table.Row{"Branch", "Action", "Reason"})
	failed := 0
	for _, r := range results {
		action := string(r.Action)
		switch r.Action {
		case domain.CleanupDeleted:
			action = theme.SuccessStyle.Render(action)
		case domain.CleanupFailed:
			failed++
			action = theme.FailureStyle.Render(action)
		default:
			action = theme.PendingStyle.Render(action)
		}
		tw.AppendRow(table.Row{r.Branch, action, r.Reason})
	}
	tw.Render()

	if failed > 0 {
		return fmt.Errorf("%d branch(es) could not be deleted", failed)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/theme"
)

// HistoryCmd lists past runs or shows one run's tool calls
type HistoryCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of runs to list (0 = all)" default:"20" short:"n"`
	RunID  string `help:"Show the tool calls of one run" name:"run"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if h.RunID != "" {
		run, err := cli.Container.HistoryService.Get(ctx, h.RunID)
		if err != nil {
			return err
		}
		if h.Format == formatJSON {
			return printJSON(run)
		}
		printRun(run)
		return nil
	}

	runs, err := cli.Container.HistoryService.List(ctx, h.Limit)
	if err != nil {
		return err
	}
	if h.Format == formatJSON {
		if runs == nil {
			runs = []domain.Run{}
		}
		return printJSON(runs)
	}
	if len(runs) == 0 {
		fmt.Println(theme.MutedStyle.Render("No runs recorded"))
		return nil
	}

	tw := newTable(table.Row{"ID", "Started", "Mode", "Task", "Outcome", "Iterations", "Commit", "Duration"})
	for _, r := range runs {
		tw.AppendRow(table.Row{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			r.TaskDescription,
			theme.OutcomeStyle(r.Outcome).Render(string(r.Outcome)),
			r.Iterations,
			r.CommitHash,
			formatDuration(r.Duration()),
		})
	}
	tw.Render()
	return nil
}

func printRun(run *domain.Run) {
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Run:"), run.ID)
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Task:"), run.TaskDescription)
	fmt.Printf("%s %s (%s)\n", theme.LabelStyle.Render("Mode:"), run.Mode, run.Model)
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Branch:"), theme.BranchStyle.Render(run.Branch))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Outcome:"), theme.OutcomeStyle(run.Outcome).Render(string(run.Outcome)))
	if run.Error != "" {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Error:"), theme.ErrorStyle.Render(run.Error))
	}
	if run.CommitHash != "" {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Commit:"), run.CommitHash)
	}

	if len(run.ToolCalls) == 0 {
		return
	}
	fmt.Println()
	tw := newTable(table.Row{"#", "Tool", "", "Duration", "Arguments"})
	for _, call := range run.ToolCalls {
		tw.AppendRow(table.Row{
			call.Sequence,
			call.Name,
			theme.GateIcon(!call.IsError),
			formatDuration(call.Duration),
			truncate(call.Arguments, 60),
		})
	}
	tw.Render()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

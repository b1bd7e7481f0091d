package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/services"
	"github.com/renato0307/obreiro/internal/theme"
)

// RunCmd lets the agent work on the next pending task
type RunCmd struct {
	BaseURL    string `help:"Model service endpoint (overrides $OPENAI_BASE_URL)" name:"base-url"`
	ByPriority bool   `help:"Pick the highest priority task instead of the first pending one" name:"by-priority"`
	Format     string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Model      string `help:"Model to use (overrides the configuration)" env:"OBREIRO_MODEL"`
	Push       bool   `help:"Push the task branch after committing"`
}

// Run executes the agent loop
func (r *RunCmd) Run(cli *CLI) error {
	cfg, warnings, err := cli.Container.LoadAgentConfig()
	if err != nil {
		return err
	}
	printWarnings(warnings)

	model, err := NewModelClient(cli.baseURL(r.BaseURL))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params := services.SessionParams{
		ByPriority: r.ByPriority,
		Model:      cli.model(r.Model),
		Push:       r.Push,
	}
	if r.Format == formatTable {
		params.OnToolCall = printToolCall
	}

	logging.Logger.Info("Starting agent run", "repo", cli.Container.Layout.Root)
	result, err := cli.Container.NewAgentService(cfg, model).Run(ctx, params)
	if err != nil {
		return err
	}

	if r.Format == formatJSON {
		return printJSON(result)
	}
	printSessionResult(result)
	return nil
}

func printToolCall(record domain.ToolCallRecord) {
	status := theme.SuccessStyle.Render(theme.IconCheck)
	if record.IsError {
		status = theme.FailureStyle.Render(theme.IconCross)
	}
	fmt.Printf("  %s %s %s\n", status, record.Name, theme.MutedStyle.Render(formatDuration(record.Duration)))
}

func printSessionResult(result *services.SessionResult) {
	run := result.Run
	if run.Outcome == domain.RunOutcomeNoTask {
		fmt.Println(theme.MutedStyle.Render("No pending tasks"))
		return
	}

	fmt.Println()
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Task:"), run.TaskDescription)
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Branch:"), theme.BranchStyle.Render(run.Branch))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Outcome:"), theme.OutcomeStyle(run.Outcome).Render(string(run.Outcome)))
	if run.CommitHash != "" {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Commit:"), run.CommitHash)
	}
	fmt.Printf("%s %d\n", theme.LabelStyle.Render("Iterations:"), run.Iterations)
	if len(result.Gates) > 0 {
		fmt.Println()
		printGates(result.Gates)
	}
	if result.Dirty {
		fmt.Println()
		fmt.Println(theme.WarningStyle.Render("The working tree has uncommitted changes left by the session"))
	}
}

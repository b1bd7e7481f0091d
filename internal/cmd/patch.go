package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/services"
)

// PatchCmd asks the model for one unified diff for the next pending task
type PatchCmd struct {
	BaseURL    string `help:"Model service endpoint (overrides $OPENAI_BASE_URL)" name:"base-url"`
	ByPriority bool   `help:"Pick the highest priority task instead of the first pending one" name:"by-priority"`
	Format     string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Model      string `help:"Model to use (overrides the configuration)" env:"OBREIRO_MODEL"`
	Push       bool   `help:"Push the task branch after committing"`
}

// Run executes patch mode
func (p *PatchCmd) Run(cli *CLI) error {
	cfg, warnings, err := cli.Container.LoadAgentConfig()
	if err != nil {
		return err
	}
	printWarnings(warnings)

	model, err := NewModelClient(cli.baseURL(p.BaseURL))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logging.Logger.Info("Starting patch run", "repo", cli.Container.Layout.Root)
	result, err := cli.Container.NewPatchService(cfg, model).Run(ctx, services.SessionParams{
		ByPriority: p.ByPriority,
		Model:      cli.model(p.Model),
		Push:       p.Push,
	})
	if err != nil {
		return err
	}

	if p.Format == formatJSON {
		return printJSON(result)
	}
	printSessionResult(result)
	return nil
}

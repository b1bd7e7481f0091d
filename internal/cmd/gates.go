package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/renato0307/obreiro/internal/domain"
)

// GatesCmd runs the configured quality gates
type GatesCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes every gate and exits nonzero when any failed
func (g *GatesCmd) Run(cli *CLI) error {
	cfg, warnings, err := cli.Container.LoadAgentConfig()
	if err != nil {
		return err
	}
	printWarnings(warnings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := cli.Container.NewQualityService(cfg).RunGates(ctx)
	if err != nil {
		return err
	}

	if g.Format == formatJSON {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printGates(results)
	}

	if failed := domain.FailedGates(results); len(failed) > 0 {
		return fmt.Errorf("quality gates failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

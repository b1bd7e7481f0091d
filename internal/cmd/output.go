package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/theme"
)

// Output formats shared by every listing command
const (
	formatJSON  = "json"
	formatTable = "table"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func newTable(header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printGates(gates []domain.GateResult) {
	if len(gates) == 0 {
		fmt.Println(theme.MutedStyle.Render("No quality gates configured"))
		return
	}
	for _, g := range gates {
		line := fmt.Sprintf("%s %s  %s", theme.GateIcon(g.Passed), g.Name, theme.MutedStyle.Render(g.Command))
		if !g.Passed {
			if g.Error != "" {
				line += "  " + theme.ErrorStyle.Render(g.Error)
			} else {
				line += "  " + theme.ErrorStyle.Render(fmt.Sprintf("exit %d", g.ExitCode))
			}
		}
		fmt.Printf("%s  %s\n", line, theme.MutedStyle.Render(formatDuration(g.Duration)))
	}
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, theme.WarningStyle.Render("warning: "+w))
	}
}

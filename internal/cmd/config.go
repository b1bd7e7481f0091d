package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/renato0307/obreiro/internal/theme"
)

// ConfigCmd groups configuration commands
type ConfigCmd struct {
	Validate ConfigValidateCmd `cmd:"validate" help:"Validate the agent configuration file" default:"withargs"`
}

// ConfigValidateCmd validates a configuration file
type ConfigValidateCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Path   string `arg:"" optional:"" help:"Configuration file (defaults to the repository's ai/config.json)"`
}

// Run executes the validate command. Invalid configurations exit nonzero.
func (c *ConfigValidateCmd) Run(cli *CLI) error {
	path := cli.Container.ConfigPath()
	if c.Path != "" {
		abs, err := filepath.Abs(c.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", c.Path, err)
		}
		path = abs
	}

	result := cli.Container.ConfigService.ValidateFile(path, cli.Container.Layout.Root)

	if c.Format == formatJSON {
		if err := printJSON(map[string]any{
			"errors":   result.Errors,
			"path":     path,
			"valid":    result.Valid(),
			"warnings": result.Warnings,
		}); err != nil {
			return err
		}
	} else {
		for _, e := range result.Errors {
			fmt.Printf("%s %s\n", theme.FailureStyle.Render(theme.IconCross), e)
		}
		for _, w := range result.Warnings {
			fmt.Printf("%s %s\n", theme.WarningStyle.Render("!"), w)
		}
		if result.Valid() {
			fmt.Printf("%s %s is valid\n", theme.SuccessStyle.Render(theme.IconCheck), path)
		}
	}

	if !result.Valid() {
		return fmt.Errorf("%s is invalid: %d error(s)", path, len(result.Errors))
	}
	return nil
}

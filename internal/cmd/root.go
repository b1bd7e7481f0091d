package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"200"`
	Repo        string           `help:"Repository to work in" default:"." type:"path" env:"OBREIRO_REPO"`
	ConfigFile  string           `help:"Agent configuration file, relative to the repository root" default:"ai/config.json"`

	Run      RunCmd      `cmd:"" help:"Let the agent work on the next pending task"`
	Patch    PatchCmd    `cmd:"" help:"Ask the model for a single patch for the next pending task"`
	Tasks    TasksCmd    `cmd:"" help:"Inspect and edit the task backlog"`
	Gates    GatesCmd    `cmd:"" help:"Run the configured quality gates"`
	Branches BranchesCmd `cmd:"" help:"List or clean up agent branches"`
	Config   ConfigCmd   `cmd:"" help:"Validate the agent configuration"`
	Status   StatusCmd   `cmd:"" help:"Show a project readiness report"`
	History  HistoryCmd  `cmd:"" help:"Show past agent runs"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults
	if c.settings != nil {
		if c.MaxLogFiles == logging.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv && c.settings.MaxLogFiles != nil {
				c.MaxLogFiles = *c.settings.MaxLogFiles
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Commands run by the agent inherit the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(logging.EnvDebugFile, logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv(logging.EnvMaxLogFiles, fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Created after logging so gorm's logger has somewhere to write
	container, err := NewContainer(c.Repo, c.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// model resolves the model override: flag or env first, then settings.json.
// An empty result means the configuration's model is used.
func (c *CLI) model(flag string) string {
	if flag != "" {
		return flag
	}
	if c.settings != nil {
		return c.settings.Model
	}
	return ""
}

// baseURL resolves the model service endpoint the same way
func (c *CLI) baseURL(flag string) string {
	if flag != "" {
		return flag
	}
	if c.settings != nil {
		return c.settings.BaseURL
	}
	return ""
}

package cmd

import (
	"context"
	"os"

	adaptergit "github.com/renato0307/obreiro/internal/adapters/git"
	adapterjournal "github.com/renato0307/obreiro/internal/adapters/journal"
	adapteropenai "github.com/renato0307/obreiro/internal/adapters/openai"
	adapterprocess "github.com/renato0307/obreiro/internal/adapters/process"
	adapterstorage "github.com/renato0307/obreiro/internal/adapters/storage"
	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
	"github.com/renato0307/obreiro/internal/services"
	"github.com/renato0307/obreiro/internal/tools"
)

// Container holds all dependencies for the application.
// Services that depend on the agent configuration are built on demand by the New* factories.
type Container struct {
	// Services
	BacklogService *services.BacklogService
	ConfigService  *services.ConfigService
	HistoryService *services.HistoryService
	ReportService  *services.ReportService

	Layout config.ProjectLayout

	gitRepo *adaptergit.CLIRepository
	runRepo ports.RunRepository
	runner  ports.CommandRunner
}

// NewContainer creates a new Container rooted at the git repository containing dir
func NewContainer(dir, configFile string) (*Container, error) {
	root, err := adaptergit.RepoRoot(context.Background(), dir)
	if err != nil {
		// Config validation and backlog commands still work outside a repository
		logging.Logger.Warn("Not inside a git repository, using directory as root", "dir", dir, "error", err)
		root = dir
	}

	layout := config.NewProjectLayout(root)
	if configFile != "" {
		layout.ConfigFile = configFile
	}

	runRepo, err := adapterstorage.NewSQLiteRepository(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	gitRepo := adaptergit.NewCLIRepository(root)
	backlogService := services.NewBacklogService(layout.Abs(layout.TasksFile))
	configService := services.NewConfigService(gitRepo)

	logging.Logger.Debug("Container initialized", "root", root, "config", layout.ConfigFile)

	return &Container{
		BacklogService: backlogService,
		ConfigService:  configService,
		HistoryService: services.NewHistoryService(runRepo),
		Layout:         layout,
		ReportService:  services.NewReportService(layout, gitRepo, configService, backlogService),
		gitRepo:        gitRepo,
		runRepo:        runRepo,
		runner:         adapterprocess.NewShellRunner(),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.runRepo != nil {
		return c.runRepo.Close()
	}
	return nil
}

// ConfigPath returns the absolute path of the agent configuration file
func (c *Container) ConfigPath() string {
	return c.Layout.Abs(c.Layout.ConfigFile)
}

// LoadAgentConfig validates and loads the agent configuration
func (c *Container) LoadAgentConfig() (*domain.AgentConfig, []string, error) {
	return c.ConfigService.Load(c.ConfigPath(), c.Layout.Root)
}

// NewWorkflowService creates the branch and commit workflow for cfg
func (c *Container) NewWorkflowService(cfg *domain.AgentConfig) *services.WorkflowService {
	journal := adapterjournal.NewFileWriter(c.Layout.Abs(c.Layout.JournalFile))
	return services.NewWorkflowService(c.gitRepo, journal, cfg.BranchPrefix, c.Layout.JournalFile)
}

// NewQualityService creates the quality gate runner for cfg
func (c *Container) NewQualityService(cfg *domain.AgentConfig) *services.QualityService {
	return services.NewQualityService(cfg, c.Layout.Root, c.runner)
}

// NewAgentService wires the tool registry and the agent loop for cfg
func (c *Container) NewAgentService(cfg *domain.AgentConfig, model ports.ModelClient) *services.AgentService {
	workflow := c.NewWorkflowService(cfg)
	registry := tools.NewRegistry(tools.DefaultTools(tools.Options{
		Applier:         c.gitRepo,
		Finalizer:       workflow,
		MaxChangedLines: cfg.MaxChangedLines,
		Runner:          c.runner,
		Tree:            c.gitRepo,
	})...)
	return services.NewAgentService(cfg, c.Layout, model, registry, workflow, c.BacklogService, c.HistoryService)
}

// NewPatchService wires single-shot patch mode for cfg
func (c *Container) NewPatchService(cfg *domain.AgentConfig, model ports.ModelClient) *services.PatchService {
	return services.NewPatchService(
		cfg,
		c.Layout,
		model,
		c.gitRepo,
		c.NewWorkflowService(cfg),
		c.BacklogService,
		c.NewQualityService(cfg),
		c.HistoryService,
	)
}

// NewModelClient creates the model service client from OPENAI_API_KEY.
// An empty baseURL falls back to OPENAI_BASE_URL.
func NewModelClient(baseURL string) (ports.ModelClient, error) {
	if baseURL == "" {
		baseURL = os.Getenv(adapteropenai.EnvBaseURL)
	}
	return adapteropenai.NewClient(os.Getenv(adapteropenai.EnvAPIKey), baseURL)
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

// GateTimeout bounds each quality gate command
const GateTimeout = 10 * time.Minute

// gateOutputLimit caps the output kept per gate
const gateOutputLimit = 8000

// QualityService runs the configured quality gate commands
type QualityService struct {
	cfg    *domain.AgentConfig
	root   string
	runner ports.CommandRunner
}

// NewQualityService creates a new QualityService running commands in root
func NewQualityService(cfg *domain.AgentConfig, root string, runner ports.CommandRunner) *QualityService {
	return &QualityService{cfg: cfg, root: root, runner: runner}
}

// RunGates runs every configured gate in order. Failures never stop later gates;
// they are reported in the returned results. Only context cancellation returns an error.
func (s *QualityService) RunGates(ctx context.Context) ([]domain.GateResult, error) {
	names := s.cfg.CommandNames()
	results := make([]domain.GateResult, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		command := s.cfg.Commands[name]
		logging.Logger.Info("Running quality gate", "gate", name, "command", command)

		gate := domain.GateResult{Command: command, Name: name}
		res, err := s.runner.Run(ctx, ports.CommandRequest{
			Command:   command,
			Dir:       s.root,
			MaxOutput: gateOutputLimit,
			Timeout:   GateTimeout,
		})
		if res != nil {
			gate.Duration = res.Duration
			gate.ExitCode = res.ExitCode
			gate.Output = combineOutput(res.Stdout, res.Stderr)
		}

		switch {
		case err != nil && errors.Is(err, ctx.Err()):
			return results, err
		case err != nil:
			gate.Error = err.Error()
			gate.ExitCode = -1
		default:
			gate.Passed = gate.ExitCode == 0
		}

		if gate.Passed {
			logging.Logger.Info("Quality gate passed", "gate", name, "duration", gate.Duration)
		} else {
			logging.Logger.Warn("Quality gate failed", "gate", name, "exit_code", gate.ExitCode, "error", gate.Error)
		}
		results = append(results, gate)
	}
	return results, nil
}

func combineOutput(stdout, stderr string) string {
	stdout = strings.TrimRight(stdout, "\n")
	stderr = strings.TrimRight(stderr, "\n")
	switch {
	case stdout == "":
		return stderr
	case stderr == "":
		return stdout
	}
	return stdout + "\n" + stderr
}

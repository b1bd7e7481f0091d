package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
	"github.com/renato0307/obreiro/internal/sandbox"
)

// Bounds and thresholds applied by the config validator
const (
	highChangedLines = 1000
	highRetry        = 5
	maxIterationsCap = 200
)

var requiredConfigFields = []string{"allowedPaths", "branchPrefix", "maxChangedLines", "commands", "retry"}

// ConfigService validates and loads the agent configuration document
type ConfigService struct {
	branches ports.BranchNamer
}

// NewConfigService creates a new ConfigService
func NewConfigService(branches ports.BranchNamer) *ConfigService {
	return &ConfigService{branches: branches}
}

// ValidateFile reads and validates the document at path. Relative allowed paths are
// checked against baseDir.
func (s *ConfigService) ValidateFile(path, baseDir string) domain.ValidationResult {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ValidationResult{Errors: []string{fmt.Sprintf("Config file not found: %s", path)}}
		}
		return domain.ValidationResult{Errors: []string{fmt.Sprintf("Failed to read config file: %v", err)}}
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return domain.ValidationResult{Errors: []string{fmt.Sprintf("Invalid config file: %v", err)}}
	}
	return s.ValidateDocument(doc, baseDir)
}

// ValidateDocument checks a decoded document and collects every violation.
// Type checks are skipped when a required field is missing.
func (s *ConfigService) ValidateDocument(doc map[string]any, baseDir string) domain.ValidationResult {
	result := domain.ValidationResult{Errors: []string{}, Warnings: []string{}}
	errorf := func(format string, args ...any) { result.Errors = append(result.Errors, fmt.Sprintf(format, args...)) }
	warnf := func(format string, args ...any) { result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...)) }

	for _, field := range requiredConfigFields {
		if _, ok := doc[field]; !ok {
			errorf("Missing required field: %s", field)
		}
	}
	if !result.Valid() {
		return result
	}

	if paths, ok := doc["allowedPaths"].([]any); !ok {
		errorf("allowedPaths must be an array")
	} else {
		for _, entry := range paths {
			p, ok := entry.(string)
			if !ok {
				errorf("Invalid allowedPath: %v (must be string)", entry)
				continue
			}
			if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(p))); err != nil {
				warnf("Allowed path does not exist: %s", p)
			}
		}
	}

	if prefix, ok := doc["branchPrefix"].(string); !ok {
		errorf("branchPrefix must be a string")
	} else if prefix == "" {
		warnf("branchPrefix is empty")
	} else if err := s.branches.ValidateBranchPrefix(prefix); err != nil {
		errorf("branchPrefix is not a valid branch prefix: %v", err)
	}

	if n, ok := number(doc["maxChangedLines"]); !ok {
		errorf("maxChangedLines must be a number")
	} else if n <= 0 {
		errorf("maxChangedLines must be positive")
	} else if n > highChangedLines {
		warnf("maxChangedLines is very high (>%d), consider reducing", highChangedLines)
	}

	if n, ok := number(doc["retry"]); !ok {
		errorf("retry must be a number")
	} else if n < 0 {
		errorf("retry must be non-negative")
	} else if n > highRetry {
		warnf("retry count is high (>%d), this might slow down the process", highRetry)
	}

	if commands, ok := doc["commands"].(map[string]any); !ok {
		errorf("commands must be an object")
	} else {
		for _, name := range domain.StandardCommands {
			if _, ok := commands[name]; !ok {
				warnf("Missing recommended command: %s", name)
			}
		}
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd, ok := commands[name].(string)
			if !ok {
				errorf("Command %s must be a string", name)
			} else if strings.TrimSpace(cmd) == "" {
				warnf("Command %s is empty", name)
			}
		}
	}

	if raw, ok := doc["model"]; ok {
		if model, ok := raw.(string); !ok || strings.TrimSpace(model) == "" {
			errorf("model must be a non-empty string")
		}
	}

	if raw, ok := doc["maxIterations"]; ok {
		n, ok := number(raw)
		if !ok || n != math.Trunc(n) || n < 1 || n > maxIterationsCap {
			errorf("maxIterations must be an integer between 1 and %d", maxIterationsCap)
		}
	}

	if raw, ok := doc["commitFormat"]; ok && raw != nil {
		if _, ok := raw.(string); !ok {
			warnf("commitFormat should be a string")
		}
	}

	return result
}

// Load validates the document at path and decodes it into an AgentConfig with defaults applied.
// Validation errors are returned as *domain.ConfigError; warnings are logged and returned.
func (s *ConfigService) Load(path, baseDir string) (*domain.AgentConfig, []string, error) {
	result := s.ValidateFile(path, baseDir)
	if !result.Valid() {
		return nil, result.Warnings, &domain.ConfigError{Path: path, Result: result}
	}
	for _, w := range result.Warnings {
		logging.Logger.Warn("Config warning", "path", path, "warning", w)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, result.Warnings, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg domain.AgentConfig
	if err := unmarshalDocument(data, &cfg); err != nil {
		return nil, result.Warnings, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.AllowedPaths = sandbox.NormalizeAllowedPaths(cfg.AllowedPaths)
	cfg.ApplyDefaults()

	logging.Logger.Info("Config loaded", "path", path, "model", cfg.Model, "allowed_paths", cfg.AllowedPaths)
	return &cfg, result.Warnings, nil
}

// decodeDocument parses JSON or YAML into a generic object
func decodeDocument(data []byte) (map[string]any, error) {
	var raw any
	if err := unmarshalDocument(data, &raw); err != nil {
		return nil, err
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level must be an object")
	}
	return doc, nil
}

// unmarshalDocument decodes JSON objects with encoding/json (YAML rejects tab indentation) and
// everything else as YAML
func unmarshalDocument(data []byte, v any) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return json.Unmarshal(trimmed, v)
	}
	return yaml.Unmarshal(data, v)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

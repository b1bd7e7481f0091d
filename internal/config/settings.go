package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings represents the structure of $OBREIRO_HOME/settings.json.
// Every field is optional; CLI flags and environment variables win over it.
type Settings struct {
	BaseURL     string `json:"base_url,omitempty"`
	Debug       *bool  `json:"debug,omitempty"`
	MaxLogFiles *int   `json:"max_log_files,omitempty"`
	Model       string `json:"model,omitempty"`
}

// LoadSettings loads settings from $OBREIRO_HOME/settings.json.
// A missing file yields empty settings.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

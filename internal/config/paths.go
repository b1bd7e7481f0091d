package config

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the obreiro state directory
const EnvHome = "OBREIRO_HOME"

// GetObreiroHome returns $OBREIRO_HOME or ~/.obreiro
func GetObreiroHome() string {
	home := os.Getenv(EnvHome)
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".obreiro"
		}
		return filepath.Join(homeDir, ".obreiro")
	}
	return ExpandPath(home)
}

// GetDBPath returns $OBREIRO_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetObreiroHome(), "state.db")
}

// GetSettingsPath returns $OBREIRO_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetObreiroHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

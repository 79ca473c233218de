package config

import (
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the config directory, mainly for tests and portable installs.
const EnvConfigDir = "TINCT_CONFIG_DIR"

func Dir() string {
	if override := os.Getenv(EnvConfigDir); override != "" {
		return override
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return ".tinct"
		}
		return filepath.Join(home, ".tinct")
	}
	return filepath.Join(base, "tinct")
}

// ThemeDir is where user theme files live. The directory may not exist yet.
func ThemeDir() string {
	return filepath.Join(Dir(), "themes")
}

func HistoryPath() string {
	return filepath.Join(Dir(), "history.db")
}

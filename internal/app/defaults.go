package app

import (
	"fmt"
	"os"
	"path/filepath"

	"capsule-go/internal/capsule"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - CAPSULE_CONFIG_PATH: config file location (default: ~/.config/emacs-capsule.toml)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("CAPSULE_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "emacs-capsule.toml"), nil
}

// ResolveLayout resolves the home directory once and derives every path
// the workflows use from it.
func ResolveLayout() (capsule.Layout, error) {
	home, err := homeDir()
	if err != nil {
		return capsule.Layout{}, err
	}
	return capsule.NewLayout(home), nil
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", capsule.ErrNoHome, err)
	}
	if home == "" {
		return "", capsule.ErrNoHome
	}
	return home, nil
}

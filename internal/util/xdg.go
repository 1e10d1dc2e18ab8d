package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "trackit"

// GetXDGDataDir returns the XDG data directory for trackit.
// It respects XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/trackit
func GetXDGDataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", appDirName), nil
}

// DataFile returns the path of name inside the XDG data directory, creating the directory.
func DataFile(name string) (string, error) {
	dir, err := GetXDGDataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

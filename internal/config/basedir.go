package config

import (
	"fmt"
	"os"
	"path/filepath"

	"arduscan/internal/model"
)

// DefaultBaseDirs lists the usual Arduino data locations under home, in
// lookup order.
func DefaultBaseDirs(home string) []string {
	return []string{
		filepath.Join(home, "Documents", "ArduinoData"),
		filepath.Join(home, "AppData", "Local", "Arduino15"),
		filepath.Join(home, ".arduino15"),
		filepath.Join(home, "Library", "Arduino15"),
	}
}

// ResolveBaseDir returns the explicit directory made absolute, else the first
// existing default location, else the working directory. It does not check
// that an explicit directory exists.
func ResolveBaseDir(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(model.ExpandTilde(explicit))
		if err != nil {
			return "", fmt.Errorf("resolve base dir %s: %w", explicit, err)
		}
		return abs, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range DefaultBaseDirs(home) {
			if model.IsDir(candidate) {
				return candidate, nil
			}
		}
	}

	return os.Getwd()
}

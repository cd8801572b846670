// Package project persists the raffle tool's files under ~/.rifas: the
// poster settings, brand presets, board state and full backups. All files
// are indented JSON.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/RifaBoard/internal/model"
)

// DefaultConfigDir returns ~/.rifas, or ./.rifas when the home directory
// is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".rifas")
}

// DefaultConfigPath returns the poster settings file, ~/.rifas/config.json.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes the poster settings (brand, logo, fonts, colors,
// canvas, ticket price and share base URL) to path.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := writeJSON(path, config); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}

// LoadAppConfig reads the poster settings from path. A missing or blank
// file yields model.DefaultAppConfig; settings absent from the file keep
// their default value, so an older file gains new colors or sizes on load.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return config, nil
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.doccli)
	ConfigDir string

	// DatabasePath is the sqlite store holding the autosaved document
	DatabasePath string

	// SettingsFile is the YAML settings file
	SettingsFile string

	// ExportsDir is where saved JSON documents and PDFs land by default
	ExportsDir string
)

// Settings holds user-tunable configuration
type Settings struct {
	BackendURL              string `yaml:"backend_url"`
	WarmupTimeoutSeconds    int    `yaml:"warmup_timeout_seconds"`
	ExportTimeoutSeconds    int    `yaml:"export_timeout_seconds"`
	AutosaveIntervalSeconds int    `yaml:"autosave_interval_seconds"`
	HistoryDepth            int    `yaml:"history_depth"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		BackendURL:              "http://localhost:8000",
		WarmupTimeoutSeconds:    3,
		ExportTimeoutSeconds:    45,
		AutosaveIntervalSeconds: 10,
		HistoryDepth:            100,
	}
}

// Validate validates the settings
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.BackendURL, validation.Required, is.URL),
		validation.Field(&s.WarmupTimeoutSeconds, validation.Min(1)),
		validation.Field(&s.ExportTimeoutSeconds, validation.Min(1)),
		validation.Field(&s.AutosaveIntervalSeconds, validation.Min(1)),
		validation.Field(&s.HistoryDepth, validation.Min(1)),
	)
}

// Initialize sets up the configuration directory and files under
// ~/.doccli, creating them when absent
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".doccli")
	DatabasePath = filepath.Join(ConfigDir, "doccli.db")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	ExportsDir = filepath.Join(ConfigDir, "exports")

	for _, dir := range []string{ConfigDir, ExportsDir} {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := WriteSettings(DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

// LoadSettings reads and validates the settings file. Missing fields
// fall back to defaults; a missing file yields the defaults entirely.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}

	applyDefaults(&settings)

	if err := settings.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// WriteSettings persists the settings file
func WriteSettings(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued fields so a partial settings file
// keeps working defaults
func applyDefaults(s *Settings) {
	defaults := DefaultSettings()
	if s.BackendURL == "" {
		s.BackendURL = defaults.BackendURL
	}
	if s.WarmupTimeoutSeconds == 0 {
		s.WarmupTimeoutSeconds = defaults.WarmupTimeoutSeconds
	}
	if s.ExportTimeoutSeconds == 0 {
		s.ExportTimeoutSeconds = defaults.ExportTimeoutSeconds
	}
	if s.AutosaveIntervalSeconds == 0 {
		s.AutosaveIntervalSeconds = defaults.AutosaveIntervalSeconds
	}
	if s.HistoryDepth == 0 {
		s.HistoryDepth = defaults.HistoryDepth
	}
}

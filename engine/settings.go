package engine

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/math3d/engine/workbook"
)

// DefaultSettingsFile is read when no settings path is given.
const DefaultSettingsFile = "math3d.toml"

type Settings struct {
	// Log level name: debug, info, warn, error or fatal.
	LogLevel string `toml:"log_level"`
	// Number of workers evaluating workbooks concurrently.
	Workers int `toml:"workers"`
	// Capacity of the job queue.
	QueueSize int `toml:"queue_size"`
	// Expectation tolerance for workbooks that do not set their own.
	Tolerance float64 `toml:"tolerance"`
	// Directory watched by the watch command.
	WatchDir string `toml:"watch_dir"`
}

func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		Workers:   runtime.NumCPU(),
		QueueSize: 16,
		Tolerance: workbook.DefaultTolerance,
		WatchDir:  "testbed",
	}
}

// LoadSettings overlays the TOML file at path on DefaultSettings. A missing
// file is not an error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("settings %s: %w", path, err)
	}
	return settings, settings.Validate()
}

func (s Settings) Validate() error {
	if s.Workers <= 0 {
		return fmt.Errorf("settings: workers must be positive, got %d", s.Workers)
	}
	if s.QueueSize < 0 {
		return fmt.Errorf("settings: queue_size must not be negative, got %d", s.QueueSize)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("settings: tolerance must not be negative, got %v", s.Tolerance)
	}
	return nil
}

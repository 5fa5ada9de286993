package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the persistent application configuration
type Config struct {
	// Journal settings
	Journal JournalConfig `json:"journal"`

	// Correlation analysis settings
	Analysis AnalysisConfig `json:"analysis"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// JournalConfig holds day-boundary and reminder settings
type JournalConfig struct {
	// SurveyResetHour shifts the survey-day boundary: entries before this
	// local hour belong to the previous journaling day. Score aggregation
	// always uses true midnight boundaries regardless of this setting.
	SurveyResetHour int `json:"survey_reset_hour" env:"GUTLOG_RESET_HOUR"`

	// ReminderHour is the local hour after which a missing daily survey
	// triggers a reminder in the UI.
	ReminderHour int `json:"reminder_hour" env:"GUTLOG_REMINDER_HOUR"`
}

// AnalysisConfig holds correlation analyzer thresholds
type AnalysisConfig struct {
	MinOccurrences int `json:"min_occurrences" env:"GUTLOG_MIN_OCCURRENCES"`
	BaselineDays   int `json:"baseline_days" env:"GUTLOG_BASELINE_DAYS"`
	MaxDelayDays   int `json:"max_delay_days" env:"GUTLOG_MAX_DELAY_DAYS"`
	SignificancePct int `json:"significance_pct" env:"GUTLOG_SIGNIFICANCE_PCT"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme    string `json:"theme"`
	DayLimit int    `json:"day_limit" env:"GUTLOG_DAY_LIMIT"` // journal rows shown
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Journal: JournalConfig{
			SurveyResetHour: 3,  // a 02:00 entry still counts toward yesterday
			ReminderHour:    20, // nag after 8pm
		},
		Analysis: AnalysisConfig{
			MinOccurrences:  3,
			BaselineDays:    7,
			MaxDelayDays:    4,
			SignificancePct: 20,
		},
		UI: UIConfig{
			Theme:    "dark",
			DayLimit: 60,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gutlog", "config.json")
}

// Load reads config from disk, or returns defaults. Environment variables
// (GUTLOG_*) override whatever the file says.
func Load() (*Config, error) {
	path := ConfigPath()

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			cfg = DefaultConfig()
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

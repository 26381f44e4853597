package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the time tracking application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Summary     SummaryConfig     `yaml:"summary"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TT_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TT_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TT_DB_DIR_PERMISSIONS"`
}

// SummaryConfig holds reporting period configuration
type SummaryConfig struct {
	// WeekStart names the first day of the reporting week, e.g. "monday".
	WeekStart string `yaml:"week_start" env:"TT_WEEK_START"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	NameMinLength int `yaml:"name_min_length" env:"TT_VALIDATION_NAME_MIN"`
	NameMaxLength int `yaml:"name_max_length" env:"TT_VALIDATION_NAME_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `yaml:"time_format" env:"TT_TIME_DISPLAY_FORMAT"`
	DateOnly   bool   `yaml:"date_only" env:"TT_DISPLAY_DATE_ONLY"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TT_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tt")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "tt.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Summary: SummaryConfig{
			WeekStart: "monday",
		},
		Validation: ValidationConfig{
			NameMinLength: 1,
			NameMaxLength: 255,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04:05",
			DateOnly:   false,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// WeekStartDay returns the configured first day of the reporting week.
func (c *Config) WeekStartDay() time.Weekday {
	day, _ := ParseWeekday(c.Summary.WeekStart)
	return day
}

// ParseWeekday converts a lowercase day name to a time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	switch name {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Monday, false
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if _, ok := ParseWeekday(c.Summary.WeekStart); !ok {
		return &ConfigError{Field: "summary.week_start", Message: "week start must be a lowercase day name such as monday"}
	}

	if c.Validation.NameMinLength < 1 {
		return &ConfigError{Field: "validation.name_min_length", Message: "name minimum length must be at least 1"}
	}
	if c.Validation.NameMaxLength < c.Validation.NameMinLength {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must be greater than minimum length"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

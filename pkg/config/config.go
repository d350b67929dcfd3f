package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/R3DB0ii/derr/pkg/derr"
	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds the logger settings carried by the TOML settings file.
// Absent keys keep the logger's construction defaults.
type Config struct {
	ProgramName  string `toml:"program_name"`
	MinLevel     string `toml:"min_level"`
	Color        bool   `toml:"color"`
	UTC          bool   `toml:"utc"`
	ErrnoDetails bool   `toml:"errno_details"`
	LogFile      string `toml:"log_file"`
	Syslog       bool   `toml:"syslog"`
}

// DefaultConfig mirrors the defaults a fresh logger starts with.
func DefaultConfig() *Config {
	return &Config{
		MinLevel:     "debug",
		Color:        true,
		ErrnoDetails: true,
	}
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Unmarshal over the defaults so keys missing from the file keep them.
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.MinLevel == "" {
		config.MinLevel = "debug"
	}

	return config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration, meant for
// first-time setup rather than round-tripping current settings.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// Apply pushes the settings onto a logger. When log_file is set the file
// is opened in append mode and installed as the file sink; the opened
// handle is returned and the caller owns it, closing it only once no
// emission can still reach it. The returned handle is nil when no file
// sink is configured.
func (c *Config) Apply(l *derr.Logger) (*os.File, error) {
	min, err := derr.ParseSeverity(c.MinLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing min_level: %w", err)
	}

	l.SetProgramName(c.ProgramName)
	l.SetMinLevel(min)
	l.EnableColor(c.Color)
	l.SetTimestampUTC(c.UTC)
	l.SetIncludeErrnoDetails(c.ErrnoDetails)

	var f *os.File
	if c.LogFile != "" {
		f, err = os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", c.LogFile, err)
		}
		l.SetLogFile(f)
	} else {
		l.SetLogFile(nil)
	}

	l.UseSyslog(c.Syslog)

	return f, nil
}

// GetConfigDir returns the configuration directory for derr
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	derrConfigDir := filepath.Join(configDir, "derr")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(derrConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", derrConfigDir, err)
	}

	return derrConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Lyric Match API base URL
	APIURL string

	// Default difficulty for new games (easy, medium, hard)
	Difficulty string

	// Default genre filter (genre ids or names)
	Genres []string

	// Timeout for each request to the API
	RequestTimeout time.Duration

	// Cancel a live session on the server before starting a new one over it
	CancelAbandoned bool

	// Path to the game history database (empty disables history)
	HistoryDB string

	// Log level (debug, info, warn, error)
	LogLevel string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	// A .env file in the working directory is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("api_url", "https://lyric-match-api.onrender.com/api")
	v.SetDefault("difficulty", "medium")
	v.SetDefault("genres", []string{})
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("cancel_abandoned", true)
	v.SetDefault("history_db", filepath.Join(getDataDir(), "history.db"))
	v.SetDefault("log_level", "info")

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("LYRICMATCH")
	v.AutomaticEnv()

	cfg := &Config{
		APIURL:          v.GetString("api_url"),
		Difficulty:      v.GetString("difficulty"),
		Genres:          v.GetStringSlice("genres"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		CancelAbandoned: v.GetBool("cancel_abandoned"),
		HistoryDB:       v.GetString("history_db"),
		LogLevel:        v.GetString("log_level"),
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "lyricmatch")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// getDataDir returns the data directory path without creating it
func getDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "lyricmatch")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// GetDataDir returns the data directory path (public helper)
func GetDataDir() string {
	return getDataDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	configFile := filepath.Join(getConfigDir(), "config.yaml")

	v.Set("api_url", c.APIURL)
	v.Set("difficulty", c.Difficulty)
	v.Set("genres", c.Genres)
	v.Set("request_timeout", c.RequestTimeout.String())
	v.Set("cancel_abandoned", c.CancelAbandoned)
	v.Set("history_db", c.HistoryDB)
	v.Set("log_level", c.LogLevel)

	return v.WriteConfigAs(configFile)
}

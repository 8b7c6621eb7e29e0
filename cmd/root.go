/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/jfmyers9/lyricmatch/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Global flags
var (
	apiURL   string
	logLevel string
	logFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lyricmatch",
	Short: "Guess the song from its lyrics",
	Long: `lyricmatch is a terminal client for the Lyric Match trivia game.

The game service picks a song and shows you a snippet of its lyrics.
Guess the song, spend hints when you are stuck, or cancel and start over.

Settings are read from ~/.config/lyricmatch/config.yaml, LYRICMATCH_*
environment variables and a .env file in the working directory.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Lyric Match API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path")
}

// loadConfig loads configuration and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

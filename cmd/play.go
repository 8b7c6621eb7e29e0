package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jfmyers9/lyricmatch/internal/config"
	"github.com/jfmyers9/lyricmatch/internal/game"
	"github.com/jfmyers9/lyricmatch/internal/history"
	"github.com/jfmyers9/lyricmatch/internal/session"
	"github.com/jfmyers9/lyricmatch/internal/tui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	playDifficulty string
	playGenres     []string
	playNoHistory  bool
	playSave       bool
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Lyric Match in the terminal",
	Long: `Start the interactive game.

Pick a difficulty and any number of genres, then start a game. You get a
lyric snippet and guess the song. Hints cost one of a limited budget:

  F1 artist  F2 year  F3 genre  F4 first letter  F5 word count

Press Esc to abandon the current game. Finished games are recorded in the
history database unless --no-history is set.

Logs are written to ~/.local/share/lyricmatch/lyricmatch.log unless
--log-file is given.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVarP(&playDifficulty, "difficulty", "d", "", "Starting difficulty (easy, medium, hard)")
	playCmd.Flags().StringSliceVarP(&playGenres, "genre", "g", nil, "Preselect a genre by id or name (repeatable)")
	playCmd.Flags().BoolVar(&playNoHistory, "no-history", false, "Do not record finished games")
	playCmd.Flags().BoolVar(&playSave, "save", false, "Save the last difficulty and genres as the new defaults")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	difficulty := cfg.Difficulty
	if playDifficulty != "" {
		difficulty = playDifficulty
	}
	d, err := session.ParseDifficulty(difficulty)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs default to a file
	path := logFile
	if path == "" {
		dataDir := config.GetDataDir()
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		path = filepath.Join(dataDir, "lyricmatch.log")
	}
	logger := setupLogger(path, cfg.LogLevel)

	logger.Info().
		Str("version", version).
		Str("api_url", cfg.APIURL).
		Msg("Starting lyricmatch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := newSessionClient(cfg, logger)

	// A failed catalog fetch leaves the genre list empty
	genres, err := client.Genres(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch genres")
	}
	catalog := game.Catalog(genres)

	selected, unknown := resolveGenres(catalog, cfg.Genres)
	for _, q := range unknown {
		logger.Warn().Str("genre", q).Msg("Ignoring unknown genre from config")
	}
	if len(playGenres) > 0 {
		flagged, unknown := resolveGenres(catalog, playGenres)
		if len(unknown) > 0 {
			return fmt.Errorf("unknown genre %q (run 'lyricmatch genres' to list them)", unknown[0])
		}
		for _, id := range flagged.IDs() {
			selected.Add(id)
		}
	}

	opts := game.Options{
		CancelAbandoned: cfg.CancelAbandoned,
		Logger:          logger,
	}

	if !playNoHistory && cfg.HistoryDB != "" {
		store, err := openHistory(cfg.HistoryDB)
		if err != nil {
			logger.Warn().Err(err).Msg("Game history disabled")
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	machine := game.New(client, game.Config{Difficulty: d, Genres: selected}, opts)
	machine.SetCatalog(genres)

	app := tui.New(machine, logger)
	app.StopAfter(ctx)

	runErr := app.Run()
	app.Shutdown()

	if playSave {
		if err := saveSettings(cfg, machine.Panel().Config); err != nil {
			logger.Error().Err(err).Msg("Failed to save settings")
		}
	}

	logger.Info().Msg("lyricmatch stopped")
	return runErr
}

// resolveGenres maps user-typed genre names or ids to catalog ids. Queries
// that match nothing are returned in unknown.
func resolveGenres(catalog game.Catalog, queries []string) (game.GenreSet, []string) {
	var selected game.GenreSet
	var unknown []string
	for _, q := range queries {
		id, err := catalog.Resolve(q)
		if err != nil {
			unknown = append(unknown, q)
			continue
		}
		selected.Add(id)
	}
	return selected, unknown
}

// saveSettings writes the panel selection back to the config file
func saveSettings(cfg *config.Config, gc game.Config) error {
	cfg.Difficulty = string(gc.Difficulty)
	cfg.Genres = gc.Genres.IDs()
	if cfg.Genres == nil {
		cfg.Genres = []string{}
	}
	return cfg.Save()
}

// openHistory opens the history database, creating its directory
func openHistory(path string) (*history.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return history.NewStore(path)
}

// newSessionClient builds a session client for one-shot commands
func newSessionClient(cfg *config.Config, logger zerolog.Logger) *session.Client {
	return session.New(session.Config{
		BaseURL:        cfg.APIURL,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)
}

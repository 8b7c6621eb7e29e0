package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jfmyers9/lyricmatch/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyCleanup time.Duration
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent games and win statistics",
	Long: `Show the most recent games recorded by 'lyricmatch play' along with
overall statistics.

Use --cleanup to delete games older than the given age, for example
--cleanup 720h to keep the last 30 days.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of recent games to show")
	historyCmd.Flags().DurationVar(&historyCleanup, "cleanup", 0, "Delete games older than this age before listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.HistoryDB == "" {
		return fmt.Errorf("history is disabled (history_db is empty)")
	}

	store, err := openHistory(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if historyCleanup > 0 {
		removed, err := store.Cleanup(ctx, historyCleanup)
		if err != nil {
			return fmt.Errorf("failed to clean up history: %w", err)
		}
		fmt.Fprintf(out, "Removed %d old games\n\n", removed)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	games, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	writeStats(out, stats)
	if len(games) > 0 {
		fmt.Fprintln(out)
		writeGames(out, games)
	}

	return nil
}

// writeStats prints the totals line
func writeStats(w io.Writer, s history.Stats) {
	fmt.Fprintf(w, "Played: %d  Won: %d  Lost: %d  Canceled: %d  Win rate: %.0f%%\n",
		s.Played, s.Won, s.Lost, s.Canceled, s.WinRate()*100)
}

// writeGames prints one aligned row per game
func writeGames(w io.Writer, games []history.Game) {
	songs := make([]string, len(games))
	for i, g := range games {
		songs[i] = g.CorrectSong
		if songs[i] == "" {
			songs[i] = "-"
		}
	}
	songWidth := columnWidth(songs, "SONG", maxColumnWidth)

	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
		padToWidth("DATE", 16),
		padToWidth("OUTCOME", 8),
		padToWidth("LEVEL", 6),
		padToWidth("GUESSES", 7),
		padToWidth("HINTS", 5),
		"SONG")

	for i, g := range games {
		line := fmt.Sprintf("%s  %s  %s  %s  %s  %s",
			padToWidth(g.EndedAt.Local().Format("2006-01-02 15:04"), 16),
			padToWidth(string(g.Outcome), 8),
			padToWidth(g.Difficulty, 6),
			padToWidth(fmt.Sprint(g.Guesses), 7),
			padToWidth(fmt.Sprint(g.HintsUsed), 5),
			padToWidth(songs[i], songWidth))
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jfmyers9/lyricmatch/internal/session"
	"github.com/spf13/cobra"
)

const maxColumnWidth = 40

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres the game service offers",
	Long: `Fetch the genre catalog from the game service and print it.

Either column can be passed to 'lyricmatch play --genre' or listed under
genres in the config file.`,
	RunE: runGenres,
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

func runGenres(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(logFile, cfg.LogLevel)
	client := newSessionClient(cfg, logger)

	genres, err := client.Genres(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	if len(genres) == 0 {
		fmt.Fprintln(os.Stderr, "No genres available")
		return nil
	}

	writeGenres(cmd.OutOrStdout(), genres)
	return nil
}

// writeGenres prints the catalog as two aligned columns
func writeGenres(w io.Writer, genres []session.Genre) {
	ids := make([]string, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	width := columnWidth(ids, "ID", maxColumnWidth)

	fmt.Fprintf(w, "%s  %s\n", padToWidth("ID", width), "NAME")
	for _, g := range genres {
		fmt.Fprintf(w, "%s  %s\n", padToWidth(g.ID, width), g.Name)
	}
}

package cmd

import (
	"testing"

	"github.com/jfmyers9/lyricmatch/internal/config"
	"github.com/jfmyers9/lyricmatch/internal/game"
	"github.com/jfmyers9/lyricmatch/internal/session"
)

func TestSaveSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	err = saveSettings(cfg, game.Config{
		Difficulty: session.Hard,
		Genres:     game.NewGenreSet("rock", "country"),
	})
	if err != nil {
		t.Fatalf("saveSettings: %v", err)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Difficulty != "hard" {
		t.Errorf("expected hard, got %q", loaded.Difficulty)
	}
	if len(loaded.Genres) != 2 || loaded.Genres[0] != "country" || loaded.Genres[1] != "rock" {
		t.Errorf("expected [country rock], got %v", loaded.Genres)
	}
	if loaded.APIURL != cfg.APIURL {
		t.Errorf("expected api url preserved, got %q", loaded.APIURL)
	}
}

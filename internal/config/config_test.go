package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIURL != "https://lyric-match-api.onrender.com/api" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Difficulty != "medium" {
		t.Errorf("expected medium, got %q", cfg.Difficulty)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.RequestTimeout)
	}
	if !cfg.CancelAbandoned {
		t.Error("expected cancel_abandoned to default to true")
	}
	if len(cfg.Genres) != 0 {
		t.Errorf("expected no genres, got %v", cfg.Genres)
	}
	if filepath.Base(cfg.HistoryDB) != "history.db" {
		t.Errorf("unexpected history db %q", cfg.HistoryDB)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("LYRICMATCH_API_URL", "http://localhost:5000/api")
	t.Setenv("LYRICMATCH_DIFFICULTY", "hard")
	t.Setenv("LYRICMATCH_CANCEL_ABANDONED", "false")
	t.Setenv("LYRICMATCH_REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Difficulty != "hard" {
		t.Errorf("expected hard, got %q", cfg.Difficulty)
	}
	if cfg.CancelAbandoned {
		t.Error("expected cancel_abandoned false from env")
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.RequestTimeout)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LYRICMATCH_LOG_LEVEL", "")
	os.Unsetenv("LYRICMATCH_LOG_LEVEL")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LYRICMATCH_LOG_LEVEL=debug\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug from .env, got %q", cfg.LogLevel)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg := &Config{
		APIURL:          "http://example.test/api",
		Difficulty:      "easy",
		Genres:          []string{"jazz", "rock"},
		RequestTimeout:  5 * time.Second,
		CancelAbandoned: false,
		HistoryDB:       "/tmp/history.db",
		LogLevel:        "warn",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.APIURL != cfg.APIURL || loaded.Difficulty != "easy" || loaded.CancelAbandoned {
		t.Errorf("unexpected loaded config %+v", loaded)
	}
	if len(loaded.Genres) != 2 || loaded.Genres[1] != "rock" {
		t.Errorf("unexpected genres %v", loaded.Genres)
	}
	if loaded.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", loaded.RequestTimeout)
	}
}

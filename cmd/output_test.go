package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jfmyers9/lyricmatch/internal/game"
	"github.com/jfmyers9/lyricmatch/internal/history"
	"github.com/jfmyers9/lyricmatch/internal/session"
)

func TestWriteGenres(t *testing.T) {
	var buf bytes.Buffer
	writeGenres(&buf, []session.Genre{
		{ID: "rock", Name: "Rock"},
		{ID: "hip-hop", Name: "Hip Hop"},
	})

	expected := "ID       NAME\n" +
		"rock     Rock\n" +
		"hip-hop  Hip Hop\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	writeStats(&buf, history.Stats{Played: 5, Won: 3, Lost: 1, Canceled: 1})

	expected := "Played: 5  Won: 3  Lost: 1  Canceled: 1  Win rate: 75%\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestWriteGames(t *testing.T) {
	ended := time.Date(2026, 3, 1, 20, 15, 0, 0, time.Local)

	var buf bytes.Buffer
	writeGames(&buf, []history.Game{
		{Outcome: history.OutcomeWon, Difficulty: "hard", Guesses: 2, HintsUsed: 1, CorrectSong: "Bohemian Rhapsody by Queen", EndedAt: ended},
		{Outcome: history.OutcomeCanceled, Difficulty: "easy", EndedAt: ended},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "DATE") || !strings.HasSuffix(lines[0], "SONG") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2026-03-01 20:15  won") {
		t.Errorf("unexpected row %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "Bohemian Rhapsody by Queen") {
		t.Errorf("expected song in row, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "-") {
		t.Errorf("expected placeholder song, got %q", lines[2])
	}
	if strings.Index(lines[1], "Bohemian") != strings.Index(lines[0], "SONG") {
		t.Error("expected song column to align with header")
	}
}

func TestResolveGenres(t *testing.T) {
	catalog := game.Catalog{
		{ID: "rock", Name: "Rock"},
		{ID: "hip-hop", Name: "Hip Hop"},
		{ID: "country", Name: "Country"},
	}

	selected, unknown := resolveGenres(catalog, []string{"Hip Hop", "rock", "countyr", "polka"})

	ids := selected.IDs()
	expected := []string{"country", "hip-hop", "rock"}
	if len(ids) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, ids)
			break
		}
	}

	if len(unknown) != 1 || unknown[0] != "polka" {
		t.Errorf("expected [polka] unknown, got %v", unknown)
	}
}

func TestResolveGenres_EmptyCatalog(t *testing.T) {
	selected, unknown := resolveGenres(nil, []string{"rock"})
	if selected.Len() != 0 {
		t.Errorf("expected empty selection, got %v", selected.IDs())
	}
	if len(unknown) != 1 {
		t.Errorf("expected rock unknown, got %v", unknown)
	}
}

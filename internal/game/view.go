package game

import (
	"strings"

	"github.com/jfmyers9/lyricmatch/internal/session"
)

// Screen is the panel a front end should show.
type Screen string

const (
	ScreenConfig   Screen = "config"
	ScreenPlaying  Screen = "playing"
	ScreenGameOver Screen = "gameOver"
)

// GenreOption is a catalog entry with its selection state.
type GenreOption struct {
	ID       string
	Name     string
	Selected bool
}

// HintOption is a hint button with its enabled state.
type HintOption struct {
	Type    session.HintType
	Label   string
	Enabled bool
}

// DisplayModel is everything a front end needs to render the game.
type DisplayModel struct {
	Screen Screen
	Phase  Phase

	// Config screen
	Difficulty   session.Difficulty
	Genres       []GenreOption
	CanConfigure bool
	CanStart     bool
	StartLabel   string

	// Playing screen
	LyricLines     []string
	CanGuess       bool
	GuessLabel     string
	Hints          []HintOption
	HintsRemaining int
	CanCancel      bool

	// Game over screen
	CorrectSong string
	CanReplay   bool

	Feedback        string
	FeedbackCorrect bool
	Hint            string
}

// Project maps machine state and configuration to a DisplayModel. It has no
// side effects.
func Project(s Snapshot, p Panel) DisplayModel {
	dm := DisplayModel{
		Phase:           s.Phase,
		Difficulty:      p.Config.Difficulty,
		Feedback:        s.Feedback,
		FeedbackCorrect: s.IsCorrect,
		Hint:            s.Hint,
		HintsRemaining:  s.HintsAvailable,
		CorrectSong:     s.CorrectSong,
		StartLabel:      "Start Game",
		GuessLabel:      "Submit Guess",
	}

	switch s.Phase {
	case Idle, Starting:
		dm.Screen = ScreenConfig
	case GameOver:
		dm.Screen = ScreenGameOver
	default:
		dm.Screen = ScreenPlaying
	}

	switch s.Phase {
	case Starting:
		dm.StartLabel = "Starting..."
	case Submitting:
		dm.GuessLabel = "Submitting..."
	}

	dm.Genres = make([]GenreOption, 0, len(p.Catalog))
	for _, g := range p.Catalog {
		dm.Genres = append(dm.Genres, GenreOption{
			ID:       g.ID,
			Name:     g.Name,
			Selected: p.Config.Genres.Has(g.ID),
		})
	}

	if s.LyricSnippet != "" {
		dm.LyricLines = strings.Split(s.LyricSnippet, "\n")
	}

	dm.CanConfigure = s.Phase == Idle
	dm.CanStart = s.Phase == Idle
	dm.CanGuess = s.Phase == Active
	dm.CanCancel = s.Phase == Active
	dm.CanReplay = s.Phase == GameOver

	hintsEnabled := s.Phase == Active && s.HintsAvailable > 0
	dm.Hints = make([]HintOption, 0, len(session.HintTypes))
	for _, t := range session.HintTypes {
		dm.Hints = append(dm.Hints, HintOption{Type: t, Label: t.Label(), Enabled: hintsEnabled})
	}

	return dm
}

package session

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/lyricmatch/pkg/lyricmatch"
)

// Handle identifies a live server-side session. It is passed explicitly to
// every session operation.
type Handle struct {
	ID string
}

// Valid reports whether the handle refers to a session.
func (h Handle) Valid() bool {
	return h.ID != ""
}

// Genre is an entry of the genre catalog.
type Genre struct {
	ID   string
	Name string
}

// Difficulty is the game difficulty sent with a start request.
type Difficulty string

const (
	Easy   Difficulty = lyricmatch.DifficultyEasy
	Medium Difficulty = lyricmatch.DifficultyMedium
	Hard   Difficulty = lyricmatch.DifficultyHard
)

// Difficulties lists the valid levels in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Difficulties {
		if d == valid {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty %q (want easy, medium or hard)", s)
}

// HintType selects which hint the service reveals.
type HintType string

const (
	HintArtist      HintType = lyricmatch.HintArtist
	HintYear        HintType = lyricmatch.HintYear
	HintGenre       HintType = lyricmatch.HintGenre
	HintFirstLetter HintType = lyricmatch.HintFirstLetter
	HintWordCount   HintType = lyricmatch.HintWordCount
)

// HintTypes lists every hint type in display order.
var HintTypes = []HintType{HintArtist, HintYear, HintGenre, HintFirstLetter, HintWordCount}

// Valid reports whether t is a known hint type.
func (t HintType) Valid() bool {
	for _, known := range HintTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the display name for the hint type.
func (t HintType) Label() string {
	switch t {
	case HintArtist:
		return "Artist"
	case HintYear:
		return "Year"
	case HintGenre:
		return "Genre"
	case HintFirstLetter:
		return "First Letter"
	case HintWordCount:
		return "Word Count"
	default:
		return string(t)
	}
}

// Settings is the pre-game configuration sent with Start.
//
// Genres must already be in the order they should appear on the wire.
type Settings struct {
	Difficulty Difficulty
	Genres     []string
}

// Started is the result of a successful Start.
type Started struct {
	Handle         Handle
	LyricSnippet   string
	HintsAvailable int
}

// Outcome is the result of a guess.
//
// CorrectSong is non-empty only when the session has concluded.
type Outcome struct {
	Feedback    string
	IsCorrect   bool
	CorrectSong string
	Concluded   bool
}

// HintResult is the result of a successful hint request.
type HintResult struct {
	Text           string
	HintsRemaining int
}

package game

import "github.com/jfmyers9/lyricmatch/internal/session"

// Phase is the state of the game machine. The transient phases
// (Starting, Submitting, Hinting) name the request that is in flight.
type Phase int

const (
	Idle       Phase = iota // No session, configuring
	Starting                // Start request in flight
	Active                  // Session live, guessing allowed
	Submitting              // Guess request in flight
	Hinting                 // Hint request in flight
	GameOver                // Correct song known
)

// String returns a human-readable representation of the Phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Active:
		return "active"
	case Submitting:
		return "submitting"
	case Hinting:
		return "hinting"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// InFlight reports whether a request is outstanding.
func (p Phase) InFlight() bool {
	return p == Starting || p == Submitting || p == Hinting
}

// HasSession reports whether a server session is live in this phase.
func (p Phase) HasSession() bool {
	return p == Active || p == Submitting || p == Hinting || p == GameOver
}

// Snapshot is a copy of the machine's state at one point in time.
type Snapshot struct {
	Phase          Phase
	Session        session.Handle
	LyricSnippet   string
	HintsAvailable int
	Hint           string
	Feedback       string
	IsCorrect      bool
	CorrectSong    string
}

package lyricmatch

// Genre is a catalog entry returned by GET /genres.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StartRequest is the body of POST /start.
//
// GenreFilter is sent as JSON null when empty and as an array otherwise.
type StartRequest struct {
	Difficulty  string   `json:"difficulty"`
	GenreFilter []string `json:"genre_filter"`
}

// StartResponse is the body returned by POST /start.
type StartResponse struct {
	SessionID      string `json:"session_id"`
	LyricSnippet   string `json:"lyric_snippet"`
	HintsAvailable int    `json:"hints_available"`
}

// GuessRequest is the body of POST /guess.
type GuessRequest struct {
	UserGuess string `json:"user_guess"`
	SessionID string `json:"session_id"`
}

// GuessResponse is the body returned by POST /guess.
//
// CorrectSong is only present once the session has concluded.
type GuessResponse struct {
	Feedback    string  `json:"feedback"`
	IsCorrect   bool    `json:"is_correct"`
	CorrectSong *string `json:"correct_song,omitempty"`
}

// HintRequest is the body of POST /hint.
type HintRequest struct {
	SessionID string `json:"session_id"`
	HintType  string `json:"hint_type"`
}

// HintResponse is the body returned by POST /hint.
type HintResponse struct {
	Hint           string `json:"hint"`
	HintsRemaining int    `json:"hints_remaining"`
}

// Hint types accepted by POST /hint.
const (
	HintArtist      = "artist"
	HintYear        = "year"
	HintGenre       = "genre"
	HintFirstLetter = "first_letter"
	HintWordCount   = "word_count"
)

// Difficulty levels accepted by POST /start.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

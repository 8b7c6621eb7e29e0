// Package lyricmatch provides a client library for the Lyric Match API.
//
// # Overview
//
// The Lyric Match service picks a song, hands out a lyric snippet and scores
// guesses against it. This package is a thin, typed wrapper over its JSON
// endpoints and carries no game rules of its own.
//
// # Quick Start
//
//	client := lyricmatch.NewClient(lyricmatch.Config{
//	    BaseURL: "https://lyric-match-api.onrender.com/api",
//	})
//
//	genres, err := client.Genres(ctx)
//
//	game, err := client.Start(ctx, lyricmatch.StartRequest{
//	    Difficulty:  lyricmatch.DifficultyMedium,
//	    GenreFilter: []string{"rock"},
//	})
//
//	result, err := client.Guess(ctx, lyricmatch.GuessRequest{
//	    SessionID: game.SessionID,
//	    UserGuess: "Bohemian Rhapsody",
//	})
//	if result.CorrectSong != nil {
//	    fmt.Println("Answer:", *result.CorrectSong)
//	}
//
// # Error Handling
//
// Non-2xx responses are returned as *Error:
//
//	_, err := client.Hint(ctx, req)
//	var apiErr *lyricmatch.Error
//	if errors.As(err, &apiErr) && apiErr.NotFound() {
//	    // session expired on the server
//	}
//
// Requests are never retried. Callers decide whether to try again.
//
// # Endpoints
//
//   - GET    /genres
//   - POST   /start
//   - POST   /guess
//   - POST   /hint
//   - DELETE /session/{session_id}
package lyricmatch

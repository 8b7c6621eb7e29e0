package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jfmyers9/lyricmatch/pkg/lyricmatch"
	"github.com/rs/zerolog"
)

// DefaultRequestTimeout bounds each call when Config.RequestTimeout is unset.
const DefaultRequestTimeout = 15 * time.Second

// Config holds session client configuration
type Config struct {
	BaseURL        string        // Lyric Match API base URL
	RequestTimeout time.Duration // Per-request timeout
	HTTPClient     *http.Client  // Optional HTTP client
}

// Client wraps the Lyric Match API client and maps its results into
// session results or *Failure values. It never retries.
type Client struct {
	api     *lyricmatch.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a new session client
func New(cfg Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "session").Logger()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := lyricmatch.NewClient(lyricmatch.Config{
		BaseURL:    cfg.BaseURL,
		HTTPClient: cfg.HTTPClient,
		Logger:     debugLogger{logger: logger},
	})

	return &Client{
		api:     api,
		timeout: timeout,
		logger:  logger,
	}
}

// Genres fetches the genre catalog.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genres: %w", err)
	}

	genres := make([]Genre, 0, len(resp))
	for _, g := range resp {
		if g.ID == "" {
			continue
		}
		genres = append(genres, Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// Start begins a new session. An empty genre list is sent as null.
func (c *Client) Start(ctx context.Context, settings Settings) (*Started, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var filter []string
	if len(settings.Genres) > 0 {
		filter = settings.Genres
	}

	resp, err := c.api.Start(ctx, lyricmatch.StartRequest{
		Difficulty:  string(settings.Difficulty),
		GenreFilter: filter,
	})
	if err != nil {
		return nil, c.failure(err, MsgStartFailed)
	}

	if resp.SessionID == "" {
		return nil, &Failure{Kind: NetworkFailure, Message: MsgStartFailed, Err: errors.New("response missing session_id")}
	}

	hints := resp.HintsAvailable
	if hints < 0 {
		hints = 0
	}

	c.logger.Debug().
		Str("session", resp.SessionID).
		Int("hints", hints).
		Msg("Session started")

	return &Started{
		Handle:         Handle{ID: resp.SessionID},
		LyricSnippet:   resp.LyricSnippet,
		HintsAvailable: hints,
	}, nil
}

// Guess submits a guess. Blank text is rejected locally with a
// ValidationError and no request is made.
func (c *Client) Guess(ctx context.Context, h Handle, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Failure{Kind: ValidationError, Message: MsgBlankGuess, Err: ErrBlankGuess}
	}
	if !h.Valid() {
		return nil, &Failure{Kind: ValidationError, Message: MsgGuessFailed, Err: lyricmatch.ErrMissingSession}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Guess(ctx, lyricmatch.GuessRequest{
		UserGuess: text,
		SessionID: h.ID,
	})
	if err != nil {
		return nil, c.failure(err, MsgGuessFailed)
	}

	out := &Outcome{
		Feedback:  resp.Feedback,
		IsCorrect: resp.IsCorrect,
	}
	if resp.CorrectSong != nil {
		out.CorrectSong = *resp.CorrectSong
		out.Concluded = true
	}
	return out, nil
}

// Hint requests a hint. When the caller's hintsAvailable is not positive the
// request is rejected locally with NoHintsAvailable. The local count may be
// stale; the server's hints_remaining is authoritative.
func (c *Client) Hint(ctx context.Context, h Handle, hintType HintType, hintsAvailable int) (*HintResult, error) {
	if hintsAvailable <= 0 {
		return nil, &Failure{Kind: NoHintsAvailable, Message: MsgNoHints}
	}
	if !hintType.Valid() {
		return nil, &Failure{Kind: ValidationError, Message: MsgUnknownHint, Err: fmt.Errorf("hint type %q", hintType)}
	}
	if !h.Valid() {
		return nil, &Failure{Kind: ValidationError, Message: MsgHintFailed, Err: lyricmatch.ErrMissingSession}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Hint(ctx, lyricmatch.HintRequest{
		SessionID: h.ID,
		HintType:  string(hintType),
	})
	if err != nil {
		return nil, c.failure(err, MsgHintFailed)
	}

	remaining := resp.HintsRemaining
	if remaining < 0 {
		remaining = 0
	}
	return &HintResult{Text: resp.Hint, HintsRemaining: remaining}, nil
}

// Cancel ends the session on the server.
func (c *Client) Cancel(ctx context.Context, h Handle) error {
	if !h.Valid() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.api.EndSession(ctx, h.ID); err != nil {
		return c.failure(err, MsgCancelFailed)
	}
	return nil
}

// failure classifies an API error. Server rejections carry the same
// user-facing message as network failures.
func (c *Client) failure(err error, msg string) *Failure {
	kind := NetworkFailure
	var apiErr *lyricmatch.Error
	if errors.As(err, &apiErr) {
		kind = ServerRejection
	}

	c.logger.Warn().
		Err(err).
		Str("kind", kind.String()).
		Msg("Request failed")

	return &Failure{Kind: kind, Message: msg, Err: err}
}

// debugLogger adapts zerolog to the lyricmatch.Logger interface.
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

package lyricmatch

import (
	"context"
	"net/http"
	"net/url"
)

// Genres fetches the genre catalog.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := c.call(ctx, http.MethodGet, "/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Start begins a new game session.
//
// An empty GenreFilter is always sent as null, never as an empty array.
func (c *Client) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	if len(req.GenreFilter) == 0 {
		req.GenreFilter = nil
	}

	var resp StartResponse
	if err := c.call(ctx, http.MethodPost, "/start", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Guess submits a guess for the given session.
func (c *Client) Guess(ctx context.Context, req GuessRequest) (*GuessResponse, error) {
	if req.SessionID == "" {
		return nil, ErrMissingSession
	}

	var resp GuessResponse
	if err := c.call(ctx, http.MethodPost, "/guess", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Hint requests a hint of the given type for the session.
func (c *Client) Hint(ctx context.Context, req HintRequest) (*HintResponse, error) {
	if req.SessionID == "" {
		return nil, ErrMissingSession
	}

	var resp HintResponse
	if err := c.call(ctx, http.MethodPost, "/hint", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EndSession deletes a session on the server. The response body is ignored.
func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrMissingSession
	}
	return c.call(ctx, http.MethodDelete, "/session/"+url.PathEscape(sessionID), nil, nil)
}

package lyricmatch

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-2xx response from the Lyric Match API.
type Error struct {
	StatusCode int    // HTTP status code
	Message    string // Error message from the response body, or the status text
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("lyricmatch: status %d: %s", e.StatusCode, e.Message)
}

// Is checks if the target error is an API error with the same status code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// NotFound reports whether the server did not recognize the resource,
// typically an expired or unknown session id.
func (e *Error) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Predefined errors for common cases.
var (
	// ErrMissingSession is returned when a session operation is called
	// without a session id.
	ErrMissingSession = errors.New("lyricmatch: session id required")
)

package lyricmatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// errorBody covers the error shapes the service is known to return.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// call makes a single HTTP request to the Lyric Match API.
//
// The request body (if any) is JSON encoded and the response body is decoded
// into out when out is non-nil. There is no retry: a failed attempt is
// returned to the caller immediately.
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	c.logDebugf("lyricmatch: %s %s", method, path)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp, respBody),
		}
		c.logDebugf("lyricmatch: %s %s failed: %v", method, path, apiErr)
		return apiErr
	}

	if out == nil {
		c.logDebugf("lyricmatch: %s %s succeeded", method, path)
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	c.logDebugf("lyricmatch: %s %s succeeded", method, path)
	return nil
}

// errorMessage extracts a human-readable message from an error response,
// falling back to the HTTP status text.
func errorMessage(resp *http.Response, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		if eb.Detail != "" {
			return eb.Detail
		}
	}

	if text := strings.TrimSpace(http.StatusText(resp.StatusCode)); text != "" {
		return text
	}
	return resp.Status
}

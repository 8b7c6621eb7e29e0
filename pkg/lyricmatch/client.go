package lyricmatch

import (
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	BaseURL    string       // Optional: API base URL (defaults to DefaultBaseURL)
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	UserAgent  string       // Optional: User-Agent header value
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Lyric Match API operations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     Logger
}

const (
	// DefaultBaseURL is the default Lyric Match API endpoint.
	DefaultBaseURL = "https://lyric-match-api.onrender.com/api"

	defaultUserAgent = "lyricmatch/1.0"
)

// NewClient creates a new Lyric Match API client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     cfg.Logger,
	}
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

package lyricmatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeService records the last request body per route.
type fakeService struct {
	bodies  map[string]string
	deleted []string
	status  int
}

func newFakeService(t *testing.T) (*fakeService, *Client) {
	t.Helper()

	fs := &fakeService{bodies: make(map[string]string), status: http.StatusOK}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if ct := req.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}
			if req.Header.Get("Authorization") != "" {
				t.Error("expected no Authorization header")
			}
			if fs.status != http.StatusOK {
				w.WriteHeader(fs.status)
				_, _ = w.Write([]byte(`{"error":"session not found"}`))
				return
			}
			next.ServeHTTP(w, req)
		})
	})
	record := func(req *http.Request) {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		fs.bodies[req.URL.Path] = string(data)
	}
	r.Get("/genres", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"rock","name":"Rock"},{"id":"pop","name":"Pop"}]`))
	})
	r.Post("/start", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		_, _ = w.Write([]byte(`{"session_id":"abc","lyric_snippet":"line1\nline2","hints_available":3}`))
	})
	r.Post("/guess", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		var body GuessRequest
		_ = json.Unmarshal([]byte(fs.bodies[req.URL.Path]), &body)
		if body.UserGuess == "Right Song" {
			_, _ = w.Write([]byte(`{"feedback":"Correct!","is_correct":true,"correct_song":"Right Song"}`))
			return
		}
		_, _ = w.Write([]byte(`{"feedback":"Not quite","is_correct":false}`))
	})
	r.Post("/hint", func(w http.ResponseWriter, req *http.Request) {
		record(req)
		_, _ = w.Write([]byte(`{"hint":"The artist is Queen","hints_remaining":2}`))
	})
	r.Delete("/session/{sessionID}", func(w http.ResponseWriter, req *http.Request) {
		fs.deleted = append(fs.deleted, chi.URLParam(req, "sessionID"))
		_, _ = w.Write([]byte(`{"message":"Session deleted"}`))
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return fs, NewClient(Config{BaseURL: server.URL + "/"})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("expected base URL %q, got %q", DefaultBaseURL, client.BaseURL())
	}
	if client.httpClient != http.DefaultClient {
		t.Error("expected default HTTP client")
	}
}

func TestClient_Genres(t *testing.T) {
	_, client := newFakeService(t)

	genres, err := client.Genres(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genres) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(genres))
	}
	if genres[0].ID != "rock" || genres[0].Name != "Rock" {
		t.Errorf("unexpected first genre: %+v", genres[0])
	}
}

func TestClient_StartGenreFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter []string
		want   string
	}{
		{name: "nil filter sent as null", filter: nil, want: "null"},
		{name: "empty filter sent as null", filter: []string{}, want: "null"},
		{name: "explicit filter sent as array", filter: []string{"pop", "rock"}, want: `["pop","rock"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, client := newFakeService(t)

			resp, err := client.Start(context.Background(), StartRequest{
				Difficulty:  DifficultyEasy,
				GenreFilter: tt.filter,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.SessionID != "abc" || resp.HintsAvailable != 3 {
				t.Errorf("unexpected response: %+v", resp)
			}
			if resp.LyricSnippet != "line1\nline2" {
				t.Errorf("unexpected snippet %q", resp.LyricSnippet)
			}

			var body map[string]json.RawMessage
			if err := json.Unmarshal([]byte(fs.bodies["/start"]), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if got := string(body["genre_filter"]); got != tt.want {
				t.Errorf("expected genre_filter %s, got %s", tt.want, got)
			}
			if got := string(body["difficulty"]); got != `"easy"` {
				t.Errorf("expected difficulty \"easy\", got %s", got)
			}
		})
	}
}

func TestClient_Guess(t *testing.T) {
	_, client := newFakeService(t)
	ctx := context.Background()

	resp, err := client.Guess(ctx, GuessRequest{SessionID: "abc", UserGuess: "wrong answer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.IsCorrect || resp.CorrectSong != nil {
		t.Errorf("expected incorrect guess without song, got %+v", resp)
	}
	if resp.Feedback != "Not quite" {
		t.Errorf("unexpected feedback %q", resp.Feedback)
	}

	resp, err = client.Guess(ctx, GuessRequest{SessionID: "abc", UserGuess: "Right Song"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsCorrect || resp.CorrectSong == nil || *resp.CorrectSong != "Right Song" {
		t.Errorf("expected correct guess with song, got %+v", resp)
	}
}

func TestClient_GuessMissingSession(t *testing.T) {
	_, client := newFakeService(t)

	_, err := client.Guess(context.Background(), GuessRequest{UserGuess: "x"})
	if !errors.Is(err, ErrMissingSession) {
		t.Errorf("expected ErrMissingSession, got %v", err)
	}
}

func TestClient_Hint(t *testing.T) {
	fs, client := newFakeService(t)

	resp, err := client.Hint(context.Background(), HintRequest{SessionID: "abc", HintType: HintArtist})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Hint != "The artist is Queen" || resp.HintsRemaining != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !strings.Contains(fs.bodies["/hint"], `"hint_type":"artist"`) {
		t.Errorf("expected hint_type in body, got %s", fs.bodies["/hint"])
	}
}

func TestClient_EndSession(t *testing.T) {
	fs, client := newFakeService(t)

	if err := client.EndSession(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.deleted) != 1 || fs.deleted[0] != "abc" {
		t.Errorf("expected DELETE for abc, got %v", fs.deleted)
	}
}

func TestClient_APIError(t *testing.T) {
	fs, client := newFakeService(t)
	fs.status = http.StatusNotFound

	_, err := client.Hint(context.Background(), HintRequest{SessionID: "gone", HintType: HintYear})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !apiErr.NotFound() {
		t.Errorf("expected NotFound, got status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "session not found" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if !errors.Is(err, &Error{StatusCode: http.StatusNotFound}) {
		t.Error("expected errors.Is to match on status code")
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.Genres(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to parse JSON response") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url})
	_, err := client.Start(context.Background(), StartRequest{Difficulty: DifficultyHard})
	if err == nil || !strings.Contains(err.Error(), "http request failed") {
		t.Errorf("expected transport error, got %v", err)
	}
}

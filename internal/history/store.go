package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Outcome is how a game ended
type Outcome string

const (
	OutcomeWon      Outcome = "won"      // Correct song guessed
	OutcomeLost     Outcome = "lost"     // Server concluded the game without a correct guess
	OutcomeCanceled Outcome = "canceled" // Player canceled or abandoned the session
)

// Game is a finished game as recorded in the history
type Game struct {
	ID          string
	SessionID   string
	Difficulty  string
	Genres      []string
	Outcome     Outcome
	CorrectSong string
	Guesses     int
	HintsUsed   int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Duration returns how long the game lasted
func (g Game) Duration() time.Duration {
	if g.EndedAt.Before(g.StartedAt) {
		return 0
	}
	return g.EndedAt.Sub(g.StartedAt)
}

// Stats summarizes the recorded games
type Stats struct {
	Played   int
	Won      int
	Lost     int
	Canceled int
}

// WinRate returns the share of concluded games that were won, in [0, 1].
// Canceled games are not counted.
func (s Stats) WinRate() float64 {
	concluded := s.Won + s.Lost
	if concluded == 0 {
		return 0
	}
	return float64(s.Won) / float64(concluded)
}

// Store keeps a log of finished games in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the history database
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			genres TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			correct_song TEXT,
			guesses INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_games_ended ON games(ended_at);
		CREATE INDEX IF NOT EXISTS idx_games_outcome ON games(outcome);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add records a finished game and returns its id. A new id is generated
// when the game does not carry one.
func (s *Store) Add(ctx context.Context, g Game) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.EndedAt.IsZero() {
		g.EndedAt = time.Now()
	}
	if g.StartedAt.IsZero() {
		g.StartedAt = g.EndedAt
	}

	query := `
		INSERT INTO games (id, session_id, difficulty, genres, outcome, correct_song, guesses, hints_used, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		g.ID,
		g.SessionID,
		g.Difficulty,
		strings.Join(g.Genres, ","),
		string(g.Outcome),
		nullString(g.CorrectSong),
		g.Guesses,
		g.HintsUsed,
		g.StartedAt.UnixMilli(),
		g.EndedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %w", err)
	}

	return g.ID, nil
}

// Recent returns the most recently ended games, newest first.
// A non-positive limit returns every game.
func (s *Store) Recent(ctx context.Context, limit int) ([]Game, error) {
	query := `
		SELECT id, session_id, difficulty, genres, outcome, COALESCE(correct_song, ''), guesses, hints_used, started_at, ended_at
		FROM games
		ORDER BY ended_at DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		var genres, outcome string
		var startedMs, endedMs int64

		err := rows.Scan(
			&g.ID,
			&g.SessionID,
			&g.Difficulty,
			&genres,
			&outcome,
			&g.CorrectSong,
			&g.Guesses,
			&g.HintsUsed,
			&startedMs,
			&endedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}

		if genres != "" {
			g.Genres = strings.Split(genres, ",")
		}
		g.Outcome = Outcome(outcome)
		g.StartedAt = time.UnixMilli(startedMs)
		g.EndedAt = time.UnixMilli(endedMs)

		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// Stats counts games by outcome
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'canceled' THEN 1 ELSE 0 END), 0)
		FROM games
	`

	var st Stats
	err := s.db.QueryRowContext(ctx, query).Scan(&st.Played, &st.Won, &st.Lost, &st.Canceled)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count games: %w", err)
	}

	return st, nil
}

// Cleanup removes games that ended longer ago than maxAge
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixMilli()

	result, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE ended_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old games: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

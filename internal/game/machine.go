package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jfmyers9/lyricmatch/internal/history"
	"github.com/jfmyers9/lyricmatch/internal/session"
	"github.com/rs/zerolog"
)

var (
	// ErrBusy is returned when an action is attempted while a request is in flight.
	ErrBusy = errors.New("game: request in flight")

	// ErrInvalidTransition is returned when an action is not valid in the current phase.
	ErrInvalidTransition = errors.New("game: action not valid in current state")

	// ErrNotIdle is returned when the configuration is changed outside Idle.
	ErrNotIdle = errors.New("game: configuration can only change while idle")

	// ErrUnknownHint is returned for hint types the service does not offer.
	ErrUnknownHint = errors.New("game: unknown hint type")
)

// SessionClient is the machine's only side-effecting dependency.
type SessionClient interface {
	Start(ctx context.Context, settings session.Settings) (*session.Started, error)
	Guess(ctx context.Context, h session.Handle, text string) (*session.Outcome, error)
	Hint(ctx context.Context, h session.Handle, hintType session.HintType, hintsAvailable int) (*session.HintResult, error)
	Cancel(ctx context.Context, h session.Handle) error
}

// Recorder receives finished games.
type Recorder interface {
	Add(ctx context.Context, g history.Game) (string, error)
}

// Options configures a Machine
type Options struct {
	// CancelAbandoned cancels a live session on the server before a new
	// game is started over it. When false the old session is only dropped
	// locally.
	CancelAbandoned bool

	// Recorder, if set, is told about every game that ends.
	Recorder Recorder

	Logger zerolog.Logger
}

// Machine owns all session state and enforces the legal transitions.
//
// Transitions are serialized by mu. Network calls are made with mu released
// while the machine sits in a transient phase, which rejects every other
// session-mutating action with ErrBusy.
type Machine struct {
	client          SessionClient
	recorder        Recorder
	cancelAbandoned bool
	logger          zerolog.Logger
	now             func() time.Time

	mu        sync.Mutex
	panel     Panel
	state     Snapshot
	settings  session.Settings // settings the live session was started with
	startedAt time.Time
	guesses   int
	hintsUsed int
	listeners []func(Snapshot)
}

// New creates a machine in Idle with the given configuration
func New(client SessionClient, cfg Config, opts Options) *Machine {
	return &Machine{
		client:          client,
		recorder:        opts.Recorder,
		cancelAbandoned: opts.CancelAbandoned,
		logger:          opts.Logger.With().Str("component", "game").Logger(),
		now:             time.Now,
		panel:           Panel{Config: Config{Difficulty: cfg.Difficulty, Genres: cfg.Genres.Clone()}},
	}
}

// OnChange registers fn to be called with a snapshot after every transition.
// Callbacks run outside the machine lock, in the goroutine that made the change.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Panel returns a copy of the configuration panel.
func (m *Machine) Panel() Panel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panel.clone()
}

// View projects the current state for display.
func (m *Machine) View() DisplayModel {
	m.mu.Lock()
	state, panel := m.state, m.panel.clone()
	m.mu.Unlock()
	return Project(state, panel)
}

// SetCatalog installs the genre catalog. It may be called in any phase.
func (m *Machine) SetCatalog(genres []session.Genre) {
	m.mu.Lock()
	m.panel.Catalog = append(Catalog(nil), genres...)
	m.mu.Unlock()
	m.notify()
}

// SetDifficulty changes the difficulty. Only valid while Idle.
func (m *Machine) SetDifficulty(d session.Difficulty) error {
	m.mu.Lock()
	if m.state.Phase != Idle {
		m.mu.Unlock()
		return ErrNotIdle
	}
	err := m.panel.SetDifficulty(d)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.notify()
	return nil
}

// ToggleGenre flips id in the genre filter and reports whether it is now
// selected. Only valid while Idle.
func (m *Machine) ToggleGenre(id string) (bool, error) {
	m.mu.Lock()
	if m.state.Phase != Idle {
		m.mu.Unlock()
		return false, ErrNotIdle
	}
	selected := m.panel.ToggleGenre(id)
	m.mu.Unlock()
	m.notify()
	return selected, nil
}

// Start begins a new game with the current configuration.
//
// It is valid from Idle, Active and GameOver. Starting over an Active game
// discards that session; see Options.CancelAbandoned. A failed start
// returns the machine to Idle with the failure message as feedback.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.state.Phase.InFlight() {
		m.mu.Unlock()
		return ErrBusy
	}

	var abandoned session.Handle
	if m.state.Phase == Active {
		abandoned = m.state.Session
		m.recordLocked(history.OutcomeCanceled, "")
	}

	settings := m.panel.Config.Settings()
	m.state = Snapshot{Phase: Starting}
	m.settings = settings
	m.mu.Unlock()
	m.notify()

	if abandoned.Valid() {
		if m.cancelAbandoned {
			if err := m.client.Cancel(ctx, abandoned); err != nil {
				m.logger.Warn().Err(err).Str("session", abandoned.ID).Msg("Failed to cancel abandoned session")
			}
		} else {
			m.logger.Warn().Str("session", abandoned.ID).Msg("Abandoning session without canceling it on the server")
		}
	}

	started, err := m.client.Start(ctx, settings)

	m.mu.Lock()
	if err != nil {
		m.state = Snapshot{Phase: Idle, Feedback: failureMessage(err, session.MsgStartFailed)}
		m.mu.Unlock()
		m.logger.Warn().Err(err).Msg("Failed to start game")
		m.notify()
		return nil
	}

	m.state = Snapshot{
		Phase:          Active,
		Session:        started.Handle,
		LyricSnippet:   started.LyricSnippet,
		HintsAvailable: started.HintsAvailable,
	}
	m.startedAt = m.now()
	m.guesses = 0
	m.hintsUsed = 0
	m.mu.Unlock()

	m.logger.Info().
		Str("session", started.Handle.ID).
		Str("difficulty", string(settings.Difficulty)).
		Strs("genres", settings.Genres).
		Int("hints", started.HintsAvailable).
		Msg("Game started")
	m.notify()
	return nil
}

// Guess submits text as a guess. Blank input only sets feedback. A result
// carrying the correct song ends the game.
func (m *Machine) Guess(ctx context.Context, text string) error {
	m.mu.Lock()
	if err := m.requireActiveLocked(); err != nil {
		m.mu.Unlock()
		return err
	}

	if strings.TrimSpace(text) == "" {
		m.state.Feedback = session.MsgBlankGuess
		m.mu.Unlock()
		m.notify()
		return nil
	}

	h := m.state.Session
	m.state.Phase = Submitting
	m.guesses++
	m.mu.Unlock()
	m.notify()

	out, err := m.client.Guess(ctx, h, text)

	m.mu.Lock()
	m.state.Phase = Active
	if err != nil {
		m.state.Feedback = failureMessage(err, session.MsgGuessFailed)
		m.mu.Unlock()
		m.notify()
		return nil
	}

	m.state.Feedback = out.Feedback
	m.state.IsCorrect = out.IsCorrect
	if out.Concluded {
		m.state.Phase = GameOver
		m.state.CorrectSong = out.CorrectSong
		outcome := history.OutcomeLost
		if out.IsCorrect {
			outcome = history.OutcomeWon
		}
		m.recordLocked(outcome, out.CorrectSong)
		m.logger.Info().
			Str("session", h.ID).
			Str("outcome", string(outcome)).
			Int("guesses", m.guesses).
			Msg("Game over")
	}
	m.mu.Unlock()
	m.notify()
	return nil
}

// Hint requests a hint of the given type. With no hints left it only sets
// the hint text. On success the revealed hint is replaced and the budget
// is taken from the server's response; on failure the budget is unchanged.
func (m *Machine) Hint(ctx context.Context, hintType session.HintType) error {
	if !hintType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownHint, hintType)
	}

	m.mu.Lock()
	if err := m.requireActiveLocked(); err != nil {
		m.mu.Unlock()
		return err
	}

	if m.state.HintsAvailable <= 0 {
		m.state.Hint = session.MsgNoHints
		m.mu.Unlock()
		m.notify()
		return nil
	}

	h, budget := m.state.Session, m.state.HintsAvailable
	m.state.Phase = Hinting
	m.mu.Unlock()
	m.notify()

	res, err := m.client.Hint(ctx, h, hintType, budget)

	m.mu.Lock()
	m.state.Phase = Active
	if err != nil {
		msg := session.MsgHintFailed
		if f, ok := session.AsFailure(err); ok && f.Kind == session.NoHintsAvailable {
			msg = f.Message
		}
		m.state.Hint = msg
	} else {
		m.state.Hint = res.Text
		m.state.HintsAvailable = res.HintsRemaining
		m.hintsUsed++
	}
	m.mu.Unlock()
	m.notify()
	return nil
}

// Cancel ends the current game and returns to Idle.
//
// From Active the server is asked to end the session, but local state is
// cleared first and regardless of the response. Cancel while Idle does
// nothing. From GameOver it behaves like Replay.
func (m *Machine) Cancel(ctx context.Context) error {
	m.mu.Lock()
	switch {
	case m.state.Phase.InFlight():
		m.mu.Unlock()
		return ErrBusy
	case m.state.Phase == Idle:
		m.mu.Unlock()
		return nil
	case m.state.Phase == GameOver:
		m.state = Snapshot{Phase: Idle}
		m.mu.Unlock()
		m.notify()
		return nil
	}

	h := m.state.Session
	m.recordLocked(history.OutcomeCanceled, "")
	m.state = Snapshot{Phase: Idle}
	m.mu.Unlock()
	m.notify()

	if err := m.client.Cancel(ctx, h); err != nil {
		m.logger.Warn().Err(err).Str("session", h.ID).Msg("Failed to cancel session")
	} else {
		m.logger.Info().Str("session", h.ID).Msg("Game canceled")
	}
	return nil
}

// Replay leaves GameOver for Idle, keeping the configuration.
func (m *Machine) Replay() error {
	m.mu.Lock()
	switch {
	case m.state.Phase.InFlight():
		m.mu.Unlock()
		return ErrBusy
	case m.state.Phase != GameOver:
		phase := m.state.Phase
		m.mu.Unlock()
		return fmt.Errorf("%w: replay from %s", ErrInvalidTransition, phase)
	}

	m.state = Snapshot{Phase: Idle}
	m.mu.Unlock()
	m.notify()
	return nil
}

// Reset returns to Idle from any stable phase.
func (m *Machine) Reset(ctx context.Context) error {
	return m.Cancel(ctx)
}

// requireActiveLocked checks that a session action is allowed.
// Must be called with m.mu held.
func (m *Machine) requireActiveLocked() error {
	switch {
	case m.state.Phase.InFlight():
		return ErrBusy
	case m.state.Phase != Active:
		return fmt.Errorf("%w: %s", ErrInvalidTransition, m.state.Phase)
	}
	return nil
}

// recordLocked hands the current game to the recorder.
// Must be called with m.mu held.
func (m *Machine) recordLocked(outcome history.Outcome, correctSong string) {
	if m.recorder == nil || !m.state.Session.Valid() {
		return
	}

	g := history.Game{
		SessionID:   m.state.Session.ID,
		Difficulty:  string(m.settings.Difficulty),
		Genres:      append([]string(nil), m.settings.Genres...),
		Outcome:     outcome,
		CorrectSong: correctSong,
		Guesses:     m.guesses,
		HintsUsed:   m.hintsUsed,
		StartedAt:   m.startedAt,
		EndedAt:     m.now(),
	}

	if _, err := m.recorder.Add(context.Background(), g); err != nil {
		m.logger.Error().Err(err).Str("session", g.SessionID).Msg("Failed to record game")
	}
}

func (m *Machine) notify() {
	m.mu.Lock()
	state := m.state
	listeners := append([]func(Snapshot){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// failureMessage picks the user-facing message for err.
func failureMessage(err error, fallback string) string {
	if f, ok := session.AsFailure(err); ok && f.Message != "" {
		return f.Message
	}
	return fallback
}

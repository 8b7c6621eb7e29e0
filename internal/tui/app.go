package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/lyricmatch/internal/game"
	"github.com/jfmyers9/lyricmatch/internal/session"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const maxGenreLabel = 24

// hintKeys maps function keys to hint types, in display order.
var hintKeys = []tcell.Key{tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4, tcell.KeyF5}

// App is the terminal front end for a game machine
type App struct {
	app     *tview.Application
	pages   *tview.Pages
	machine *game.Machine
	logger  zerolog.Logger

	// Config page
	form       *tview.Form
	configInfo *tview.TextView

	// Playing page
	lyrics   *tview.TextView
	guess    *tview.InputField
	feedback *tview.TextView
	hints    *tview.TextView

	// Game over page
	answer *tview.TextView
	replay *tview.Button

	status *tview.TextView

	// Last-rendered content for change detection.
	// Only touched from the UI goroutine.
	lastScreen     game.Screen
	lastCatalog    string
	lastConfigInfo string
	lastLyrics     string
	lastFeedback   string
	lastHints      string
	lastAnswer     string
	lastStartLabel string

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a TUI bound to machine
func New(machine *game.Machine, logger zerolog.Logger) *App {
	a := &App{
		app:     tview.NewApplication(),
		machine: machine,
		logger:  logger.With().Str("component", "tui").Logger(),
	}
	a.ctx, a.cancelFunc = context.WithCancel(context.Background())
	a.setupUI()

	// Machine callbacks can fire on the UI goroutine, where a blocking
	// QueueUpdateDraw would deadlock.
	machine.OnChange(func(game.Snapshot) {
		go a.app.QueueUpdateDraw(a.render)
	})

	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	// Config page
	a.form = tview.NewForm()
	a.form.SetBorder(true).
		SetTitle(" Start a New Game ").
		SetTitleAlign(tview.AlignLeft)

	a.configInfo = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	configPage := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.form, 0, 1, true).
		AddItem(a.configInfo, 2, 0, false)

	// Playing page
	a.lyrics = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetWordWrap(true)
	a.lyrics.SetBorder(true).
		SetTitle(" Lyrics ").
		SetTitleAlign(tview.AlignLeft)

	a.guess = tview.NewInputField().
		SetLabel("Guess: ").
		SetPlaceholder("Enter song and artist...")
	a.guess.SetBorder(true)
	a.guess.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := a.guess.GetText()
		a.dispatch("guess", func(ctx context.Context) error {
			return a.machine.Guess(ctx, text)
		})
	})

	a.feedback = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	a.hints = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.hints.SetBorder(true).
		SetTitle(" Hints ").
		SetTitleAlign(tview.AlignLeft)

	playingPage := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.lyrics, 0, 3, false).
		AddItem(a.guess, 3, 0, true).
		AddItem(a.feedback, 2, 0, false).
		AddItem(a.hints, 6, 0, false)

	// Game over page
	a.answer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.answer.SetBorder(true).
		SetTitle(" Game Over! ").
		SetTitleAlign(tview.AlignLeft)

	a.replay = tview.NewButton("Play Again").SetSelectedFunc(func() {
		a.dispatch("replay", func(context.Context) error {
			return a.machine.Replay()
		})
	})

	gameOverPage := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.answer, 0, 1, false).
		AddItem(a.replay, 1, 0, true)

	a.pages = tview.NewPages().
		AddPage(string(game.ScreenConfig), configPage, true, true).
		AddPage(string(game.ScreenPlaying), playingPage, true, false).
		AddPage(string(game.ScreenGameOver), gameOverPage, true, false)

	// Status bar
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(root, true)
}

// handleKeyEvent processes global keys: hints and cancel while playing
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if a.lastScreen != game.ScreenPlaying {
		return event
	}

	for i, key := range hintKeys {
		if event.Key() == key {
			hintType := session.HintTypes[i]
			a.dispatch("hint", func(ctx context.Context) error {
				return a.machine.Hint(ctx, hintType)
			})
			return nil
		}
	}

	if event.Key() == tcell.KeyEscape {
		a.dispatch("cancel", a.machine.Cancel)
		return nil
	}

	return event
}

// dispatch runs a machine action off the UI goroutine
func (a *App) dispatch(name string, action func(ctx context.Context) error) {
	go func() {
		err := action(a.ctx)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrBusy):
			a.logger.Debug().Str("action", name).Msg("Ignored while request in flight")
		default:
			a.logger.Warn().Err(err).Str("action", name).Msg("Action rejected")
		}
	}()
}

// Run starts the TUI and blocks until it exits
func (a *App) Run() error {
	a.render()

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// Stop stops the TUI application
func (a *App) Stop() {
	a.cancelFunc()
	a.app.Stop()
}

// render updates every component from the current display model.
// Runs on the UI goroutine.
func (a *App) render() {
	dm := a.machine.View()

	a.renderConfig(dm)
	a.renderPlaying(dm)
	a.renderGameOver(dm)

	if dm.Screen != a.lastScreen {
		if dm.Screen == game.ScreenPlaying && a.lastScreen != game.ScreenPlaying {
			a.guess.SetText("")
		}
		a.lastScreen = dm.Screen
		a.pages.SwitchToPage(string(dm.Screen))
		a.status.SetText(statusText(dm.Screen))

		switch dm.Screen {
		case game.ScreenPlaying:
			a.app.SetFocus(a.guess)
		case game.ScreenGameOver:
			a.app.SetFocus(a.replay)
		default:
			a.app.SetFocus(a.form)
		}
	}

	a.guess.SetDisabled(!dm.CanGuess)
}

// renderConfig rebuilds the form when the catalog changes and refreshes
// the start label and messages
func (a *App) renderConfig(dm game.DisplayModel) {
	key := catalogKey(dm.Genres)
	if key != a.lastCatalog || a.form.GetFormItemCount() == 0 {
		a.lastCatalog = key
		a.buildForm(dm)
	}

	if a.form.GetButtonCount() > 0 && dm.StartLabel != a.lastStartLabel {
		a.lastStartLabel = dm.StartLabel
		a.form.GetButton(0).SetLabel(dm.StartLabel)
	}

	var info string
	if dm.Screen == game.ScreenConfig && dm.Feedback != "" {
		info = fmt.Sprintf("[red]%s[-]", tview.Escape(dm.Feedback))
	} else if len(dm.Genres) == 0 {
		info = "[gray]No genres available[-]"
	}
	if info != a.lastConfigInfo {
		a.lastConfigInfo = info
		a.configInfo.SetText(info)
	}
}

// buildForm creates the difficulty dropdown, genre checkboxes and start button
func (a *App) buildForm(dm game.DisplayModel) {
	a.form.Clear(true)

	options := make([]string, len(session.Difficulties))
	current := 0
	for i, d := range session.Difficulties {
		options[i] = strings.ToUpper(string(d[:1])) + string(d[1:])
		if d == dm.Difficulty {
			current = i
		}
	}
	a.form.AddDropDown("Difficulty", options, current, func(_ string, index int) {
		if index < 0 || index >= len(session.Difficulties) {
			return
		}
		if err := a.machine.SetDifficulty(session.Difficulties[index]); err != nil {
			a.logger.Debug().Err(err).Msg("Difficulty not changed")
		}
	})

	for _, g := range dm.Genres {
		id := g.ID
		a.form.AddCheckbox(genreLabel(g.Name), g.Selected, func(bool) {
			if _, err := a.machine.ToggleGenre(id); err != nil {
				a.logger.Debug().Err(err).Str("genre", id).Msg("Genre not toggled")
			}
		})
	}

	a.form.AddButton("Start Game", func() {
		a.dispatch("start", a.machine.Start)
	})
	a.lastStartLabel = "Start Game"
}

// renderPlaying updates the lyrics, feedback and hint panels
func (a *App) renderPlaying(dm game.DisplayModel) {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range dm.LyricLines {
		sb.WriteString(fmt.Sprintf("[white::i]%s[-:-:-]\n", tview.Escape(line)))
	}
	if text := sb.String(); text != a.lastLyrics {
		a.lastLyrics = text
		a.lyrics.SetText(text)
	}

	var feedback string
	switch {
	case dm.GuessLabel == "Submitting...":
		feedback = "[gray]Submitting...[-]"
	case dm.Feedback == "":
	case dm.FeedbackCorrect:
		feedback = fmt.Sprintf("[green]%s[-]", tview.Escape(dm.Feedback))
	default:
		feedback = fmt.Sprintf("[yellow]%s[-]", tview.Escape(dm.Feedback))
	}
	if feedback != a.lastFeedback {
		a.lastFeedback = feedback
		a.feedback.SetText(feedback)
	}

	if text := hintsText(dm); text != a.lastHints {
		a.lastHints = text
		a.hints.SetText(text)
	}
}

// renderGameOver updates the correct answer panel
func (a *App) renderGameOver(dm game.DisplayModel) {
	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range dm.LyricLines {
		sb.WriteString(fmt.Sprintf("[gray]%s[-]\n", tview.Escape(line)))
	}
	sb.WriteString("\nThe correct answer was:\n\n")
	sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(dm.CorrectSong)))
	if dm.Feedback != "" {
		color := "yellow"
		if dm.FeedbackCorrect {
			color = "green"
		}
		sb.WriteString(fmt.Sprintf("\n[%s]%s[-]", color, tview.Escape(dm.Feedback)))
	}

	if text := sb.String(); text != a.lastAnswer {
		a.lastAnswer = text
		a.answer.SetText(text)
	}
}

// hintsText renders the hint budget, key legend and revealed hint
func hintsText(dm game.DisplayModel) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Need a Hint? (%d remaining)\n", dm.HintsRemaining))

	for i, h := range dm.Hints {
		if i > 0 {
			sb.WriteString("  ")
		}
		color := "gray"
		if h.Enabled {
			color = "white"
		}
		sb.WriteString(fmt.Sprintf("[%s]F%d %s[-]", color, i+1, h.Label))
	}

	if dm.Phase == game.Hinting {
		sb.WriteString("\n\n[gray]Getting hint...[-]")
	} else if dm.Hint != "" {
		sb.WriteString(fmt.Sprintf("\n\n[yellow::b]Hint:[-:-:-] %s", tview.Escape(dm.Hint)))
	}

	return sb.String()
}

func statusText(screen game.Screen) string {
	switch screen {
	case game.ScreenPlaying:
		return "[gray]enter:guess  F1-F5:hint  esc:cancel game  ctrl-c:quit[-]"
	case game.ScreenGameOver:
		return "[gray]enter:play again  ctrl-c:quit[-]"
	default:
		return "[gray]tab:next field  space:toggle  enter:select  ctrl-c:quit[-]"
	}
}

// genreLabel truncates long genre names to a fixed display width
func genreLabel(name string) string {
	if runewidth.StringWidth(name) <= maxGenreLabel {
		return name
	}
	return runewidth.Truncate(name, maxGenreLabel, "...")
}

func catalogKey(genres []game.GenreOption) string {
	ids := make([]string, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	return strings.Join(ids, "\x00")
}

// StopAfter stops the application once ctx is done
func (a *App) StopAfter(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			a.Stop()
		case <-a.ctx.Done():
		}
	}()
}

// shutdownTimeout bounds the cancel request sent on exit
const shutdownTimeout = 5 * time.Second

// Shutdown cancels a live session so it is not left open on the server.
func (a *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if snap := a.machine.Snapshot(); snap.Phase == game.Active {
		if err := a.machine.Cancel(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to cancel session on exit")
		}
	}
}

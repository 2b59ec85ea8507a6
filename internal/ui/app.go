// Package ui is the terminal front end: a main menu and the game screen,
// built on bubbletea.
package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/engine"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/storage"
)

// Deps are the collaborators the front end needs.
type Deps struct {
	Config  *config.Config
	Content *engine.Content
	Store   storage.Store
	Logger  *zap.Logger
	// NewSource returns the random source for a new or loaded game.
	NewSource func() dice.Source
}

// App is the root bubbletea model.
type App struct {
	deps   Deps
	game   *gameModel
	status string
	err    error

	width, height int
}

// NewApp returns an App showing the main menu.
//
// Precondition: every field of deps is set.
func NewApp(deps Deps) *App {
	return &App{deps: deps, width: 100, height: 40}
}

// Err returns the error the App quit with, if any.
func (a *App) Err() error { return a.err }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.game != nil {
			a.game.width, a.game.height = msg.Width, msg.Height
		}
	case SaveAndQuitMsg:
		if a.game != nil {
			if a.game.mode != modeGameOver {
				a.game.save()
			}
			a.closeGame()
		}
		return a, tea.Quit
	case tea.KeyMsg:
		if a.game != nil {
			return a, a.updateGame(msg)
		}
		return a, a.updateMenu(msg.String())
	}
	return a, nil
}

func (a *App) updateGame(msg tea.KeyMsg) tea.Cmd {
	switch a.game.update(msg) {
	case exitMenu:
		if err := a.game.saveErr; err != nil {
			a.status = "Failed to save game: " + err.Error()
		}
		a.closeGame()
	case exitQuit:
		a.closeGame()
		return tea.Quit
	case exitDead:
		a.closeGame()
		a.err = gameerr.ErrQuitWithoutSaving
		return tea.Quit
	}
	return nil
}

func (a *App) closeGame() {
	a.game.eng.Close()
	a.game = nil
}

func (a *App) updateMenu(key string) tea.Cmd {
	a.status = ""
	switch key {
	case "n", "N":
		eng, err := engine.NewGame(a.deps.Config, a.deps.Content, a.deps.NewSource(), a.deps.Logger)
		if err != nil {
			a.deps.Logger.Error("starting game", zap.Error(err))
			a.status = "Failed to start a new game:\n" + err.Error()
			return nil
		}
		a.startGame(eng)
	case "c", "C":
		eng, err := engine.Load(context.Background(), a.deps.Store, a.deps.Config, a.deps.Content, a.deps.NewSource(), a.deps.Logger)
		switch {
		case errors.Is(err, storage.ErrSaveNotFound):
			a.status = "No saved game to load."
			return nil
		case err != nil:
			a.deps.Logger.Error("loading save", zap.Error(err))
			a.status = "Failed to load save:\n" + err.Error()
			return nil
		}
		a.startGame(eng)
	case "q", "Q", "esc", "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (a *App) startGame(eng *engine.Engine) {
	a.game = newGameModel(eng, a.deps.Store, a.deps.Logger, a.width, a.height)
}

func (a *App) View() string {
	if a.game != nil {
		return a.game.view()
	}
	return a.menuView()
}

func (a *App) menuView() string {
	lines := []string{
		titleStyle.Render("DUNGEON OF WANDERING SHADOWS"),
		"",
		"[N] Play a new game",
		"[C] Continue last game",
		"[Q] Quit",
	}
	if a.status != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(messageColor(message.Invalid)).Render(a.status))
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

// SaveAndQuitMsg asks the App to save a running game and quit.
type SaveAndQuitMsg struct{}

// Service runs the front end as a lifecycle service. Stop saves any game in
// progress before the terminal is released.
type Service struct {
	app     *App
	program *tea.Program
	done    chan struct{}
}

// NewService builds the front end program. bubbletea's own signal handling
// is disabled so the lifecycle decides how a signal ends the game.
func NewService(deps Deps, opts ...tea.ProgramOption) *Service {
	app := NewApp(deps)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}, opts...)
	return &Service{app: app, program: tea.NewProgram(app, opts...), done: make(chan struct{})}
}

// Start runs the program until the player quits. It returns
// gameerr.ErrQuitWithoutSaving when the player quit after dying.
func (s *Service) Start() error {
	defer close(s.done)
	if _, err := s.program.Run(); err != nil {
		return err
	}
	return s.app.Err()
}

// Stop saves and quits, then waits for the terminal to be restored.
func (s *Service) Stop() {
	s.program.Send(SaveAndQuitMsg{})
	<-s.done
}

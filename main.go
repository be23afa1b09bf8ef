package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"flipmind/internal/config"
	"flipmind/internal/deck"
	"flipmind/internal/game"
	"flipmind/internal/scoring"
)

// taskMsg carries a scheduled game task back into the update loop.
type taskMsg game.Task

type model struct {
	session *game.Session
	queue   *game.QueueScheduler
	view    *boardView
	cursor  int
	keys    keyMap
	help    help.Model
	err     error
}

func newModel(sess *game.Session, queue *game.QueueScheduler, view *boardView) *model {
	return &model{
		session: sess,
		queue:   queue,
		view:    view,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// flush turns everything the session scheduled into timer commands.
func (m *model) flush() tea.Cmd {
	queued := m.queue.Drain()
	if len(queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(queued))
	for _, s := range queued {
		task := s.Task
		cmds = append(cmds, tea.Tick(s.Delay, func(time.Time) tea.Msg {
			return taskMsg(task)
		}))
	}
	return tea.Batch(cmds...)
}

func (m *model) Init() tea.Cmd {
	return m.flush()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		m.session.Deliver(game.Task(msg))
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
	}
	return m, m.flush()
}

func (m *model) handleKey(msg tea.KeyMsg) {
	columns := m.session.Difficulty.Level().Columns
	size := len(m.session.CurrentGame.State.Board)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor-columns >= 0 {
			m.cursor -= columns
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+columns < size {
			m.cursor += columns
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%columns > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%columns < columns-1 && m.cursor+1 < size {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Flip):
		m.session.RequestFlip(m.cursor)
	case key.Matches(msg, m.keys.Reset):
		m.newGame(m.session.Reset())
	case key.Matches(msg, m.keys.Easy):
		m.newGame(m.session.SelectDifficulty(deck.Easy))
	case key.Matches(msg, m.keys.Medium):
		m.newGame(m.session.SelectDifficulty(deck.Medium))
	case key.Matches(msg, m.keys.Hard):
		m.newGame(m.session.SelectDifficulty(deck.Hard))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *model) newGame(err error) {
	m.cursor = 0
	m.err = err
	if err != nil {
		log.Error().Err(err).Msg("could not start a new game")
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config.LoadDotenv()
	cfg, err := config.Parse(args, os.Stderr)
	if err != nil {
		return err
	}

	logFile, err := config.SetupLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		config.DisableLogging()
	} else {
		defer logFile.Close()
	}

	catalog := deck.DefaultCatalog()
	if len(cfg.Symbols) > 0 {
		catalog, err = deck.LoadCatalog(cfg.Symbols)
		if err != nil {
			return fmt.Errorf("failed to load symbols: %w", err)
		}
	}

	store, err := scoring.Open(cfg.ScoreBackend, cfg.ScorePath)
	if err != nil {
		return fmt.Errorf("failed to create score storage: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().
		Str("difficulty", cfg.Difficulty.String()).
		Str("scores", cfg.ScoreBackend).
		Int64("seed", seed).
		Int("symbols", len(catalog)).
		Msg("starting")

	view := newBoardView()
	queue := &game.QueueScheduler{}
	sess, err := game.NewSession(game.Options{
		Difficulty: cfg.Difficulty,
		Catalog:    catalog,
		Shuffler:   deck.NewShuffler(rand.NewSource(seed)),
		Store:      store,
		Scheduler:  queue,
		Renderer:   view,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(sess, queue, view), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running the program: %w", err)
	}

	log.Info().Int("wins", sess.Wins).Int("losses", sess.Losses).Msg("exiting")
	return nil
}

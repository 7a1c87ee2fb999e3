package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/june1016/PAC-MAN/internal/audio"
	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/game"
	"github.com/june1016/PAC-MAN/internal/maze"
	"github.com/june1016/PAC-MAN/internal/storage"
)

// topScoresShown is how many leaderboard rows the game over box lists.
const topScoresShown = 5

// Options configures a Model.
type Options struct {
	Template   maze.LevelTemplate
	Config     config.GameConfig
	Runtime    core.RuntimeConfig
	Store      *storage.Store // optional
	Sink       audio.Sink     // optional, defaults to audio.Silent
	Logger     *log.Logger    // optional
	PlayerName string
}

type mode int

const (
	modeTitle mode = iota
	modeGame
)

// gameResult is what the game over box shows.
type gameResult struct {
	record game.FinalRecord
	rank   int
	ranked bool
	top    []storage.ScoreEntry
}

// Model is the Bubble Tea model for one player's session.
type Model struct {
	session *game.Session
	mazeID  string
	store   *storage.Store
	sink    audio.Sink
	logger  *log.Logger
	runtime core.RuntimeConfig

	screen *core.Screen
	keys   KeyMap
	help   help.Model
	title  titleScreen
	ticker *scoreTicker
	frame  core.InputFrame

	mode      mode
	name      string
	highScore int
	result    *gameResult
	renders   int
	quitting  bool
}

// NewModel builds the session and shows the title screen.
func NewModel(opts Options) (Model, error) {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Sink == nil {
		opts.Sink = audio.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	session, err := game.NewSession(opts.Template, opts.Config, rand.New(rand.NewSource(opts.Runtime.Seed)))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		session: session,
		mazeID:  opts.Template.ID(),
		store:   opts.Store,
		sink:    opts.Sink,
		logger:  opts.Logger,
		runtime: opts.Runtime,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		ticker:  &scoreTicker{},
		frame:   core.NewInputFrame(),
		name:    storage.NormalizeName(opts.PlayerName),
	}

	if m.store != nil {
		if hs, err := m.store.HighScore(m.mazeID); err == nil {
			m.highScore = hs
		} else {
			m.logger.Warn("could not read high score", "maze", m.mazeID, "err", err)
		}
	}

	w, h := m.minScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	m.screen = core.NewScreen(w, h)
	m.help.Width = w
	m.title = newTitleScreen(opts.PlayerName, opts.Template.Name(), m.highScore)

	return m, nil
}

// minScreen grows w and h to fit the maze with its HUD and status lines.
func (m Model) minScreen(w, h int) (int, int) {
	tpl := m.session.Template()
	if need := tpl.Cols() * cellWidth; w < need {
		w = need
	}
	if need := hudRows + tpl.Rows() + 2; h < need {
		h = need
	}
	return w, h
}

// Init starts the tick loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.mode == modeTitle {
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.mode == modeTitle {
		switch msg.String() {
		case "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.name = m.title.Name()
			m.mode = modeGame
			m.startGame()
			return m, nil
		}
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		return m, cmd
	}

	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	// One line is reserved for the help bar
	w, h := m.minScreen(msg.Width, msg.Height-1)
	m.screen.Resize(w, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.mode != modeGame {
		return m, tickCmd(m.runtime.TickRate)
	}

	before := m.session.Phase()
	res := m.session.Step(m.frame)
	m.frame.Clear()

	if before == game.PhaseGameOver && m.session.Phase() == game.PhasePlaying {
		m.startGame()
	}

	for _, ev := range res.Events {
		m.sink.Play(ev)
		m.logger.Debug("event", "kind", ev.Kind, "tick", ev.Tick, "points", ev.Points, "level", ev.Level)
		if ev.Kind == game.EventGameOver {
			m.finish()
		}
	}

	rate := m.session.TickRate(m.runtime.TickRate)
	m.ticker.Set(res.State.Score)
	m.ticker.Update(1 / float32(rate))
	m.renders++

	return m, tickCmd(rate)
}

// startGame begins a fresh run, from the title screen or after a game over.
func (m *Model) startGame() {
	if m.session.Phase() != game.PhasePlaying {
		m.session.StartNewGame()
	}
	m.result = nil
	m.ticker.Set(0)
	m.logger.Info("game started", "maze", m.mazeID, "player", m.name)
}

// finish records the final score once per game over.
func (m *Model) finish() {
	rec, ok := m.session.FinalRecord()
	if !ok || m.result != nil {
		return
	}
	res := &gameResult{record: rec}
	m.result = res
	m.logger.Info("game over", "maze", m.mazeID, "player", m.name, "score", rec.Score, "level", rec.Level)

	if m.store == nil || rec.Score <= 0 {
		return
	}
	rank, err := m.store.Rank(m.mazeID, rec.Score)
	if err != nil {
		m.logger.Warn("could not rank score", "err", err)
	}
	if _, ranked, err := m.store.SaveScore(m.mazeID, m.name, rec.Score, rec.Level); err != nil {
		m.logger.Warn("could not save score", "err", err)
	} else {
		res.ranked = ranked
		if ranked {
			res.rank = rank
		}
	}
	if top, err := m.store.TopScores(m.mazeID, topScoresShown); err == nil {
		res.top = top
	}
	if rec.Score > m.highScore {
		m.highScore = rec.Score
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".pacman", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.mazeID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
	}
}

// draw renders the board and any game over box into the screen buffer.
func (m *Model) draw() {
	board := m.session.Maze()
	DrawBoard(m.screen, BoardView{
		Snap:      m.session.Snapshot(),
		Board:     board,
		Score:     m.ticker.Value(),
		HighScore: max(m.highScore, m.session.Score()),
		Name:      m.name,
		Frame:     m.renders,
	})
	if m.result != nil {
		drawOverlay(m.screen, board, gameOverLines(m.result), core.ColorRed)
	}
}

func gameOverLines(r *gameResult) []string {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("score %d  level %d", r.record.Score, r.record.Level),
	}
	if r.ranked {
		lines = append(lines, fmt.Sprintf("new entry at #%d", r.rank))
	}
	if len(r.top) > 0 {
		lines = append(lines, "")
		for i, e := range r.top {
			lines = append(lines, fmt.Sprintf("%d. %-*s %7d", i+1, storage.MaxNameLen, e.Name, e.Score))
		}
	}
	return append(lines, "", "r: new game   q: quit")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeTitle {
		return m.title.View(m.screen.Width(), m.screen.Height())
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a local terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

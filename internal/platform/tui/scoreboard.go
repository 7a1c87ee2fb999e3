package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/june1016/PAC-MAN/internal/registry"
	"github.com/june1016/PAC-MAN/internal/storage"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeTabStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	tabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next maze"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev maze"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// ScoreboardModel browses the stored top ten one maze at a time.
type ScoreboardModel struct {
	mazes     []registry.TemplateInfo
	cursor    int
	store     *storage.Store
	stats     map[string]*storage.MazeStats
	scores    []storage.ScoreEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered maze. A nil
// store shows empty rankings.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		mazes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width

	if store != nil {
		m.stats, m.loadErr = store.Stats()
	}
	m.table = newScoreTable(width, height)
	m.reload()
	return m
}

// scoreColumns sizes the table to width, shrinking the name column first.
func scoreColumns(width int) []table.Column {
	const fixed = 5 + 8 + 4 + 13
	name := storage.MaxNameLen
	// Frame border, padding and cell gaps
	if avail := width - fixed - 14; avail < name {
		name = max(avail, 6)
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: name},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Date", Width: 13},
	}
}

func newScoreTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(scoreColumns(width)),
		table.WithFocused(true),
		table.WithHeight(min(storage.MaxEntries+1, max(height-10, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the ranking of the selected maze into the table.
func (m *ScoreboardModel) reload() {
	m.scores = nil
	if m.store != nil && len(m.mazes) > 0 {
		scores, err := m.store.TopScores(m.mazes[m.cursor].ID, storage.MaxEntries)
		if err != nil {
			m.loadErr = err
		} else {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Level),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// moveCursor selects the maze delta positions away, wrapping around.
func (m *ScoreboardModel) moveCursor(delta int) {
	if len(m.mazes) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.mazes)) % len(m.mazes)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.moveCursor(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case len(m.scores) > 0:
		body = m.table.View()
	case m.loadErr != nil:
		body = emptyStyle.Render("Scores unavailable:\n" + m.loadErr.Error())
	default:
		body = emptyStyle.Render("No scores recorded yet.\nClear this maze to set a high score!")
	}
	b.WriteString(centerText(frameStyle.Render(body), m.width))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tabs renders one tab per maze, or just the selected one between arrows
// when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.mazes) == 0 {
		return tabStyle.Render("no mazes registered")
	}
	parts := make([]string, len(m.mazes))
	for i, mz := range m.mazes {
		if i == m.cursor {
			parts[i] = activeTabStyle.Render(mz.Name)
		} else {
			parts[i] = tabStyle.Render(mz.Name)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "< " + activeTabStyle.Render(m.mazes[m.cursor].Name) + " >"
	}
	return line
}

// statsLine summarizes the selected maze's history.
func (m ScoreboardModel) statsLine() string {
	if len(m.mazes) == 0 {
		return ""
	}
	st, ok := m.stats[m.mazes[m.cursor].ID]
	if !ok {
		return "no games played"
	}
	return fmt.Sprintf("%d entries   avg %.0f   best level %d   last played %s",
		st.Entries, st.AvgScore, st.BestLevel, st.LastPlayed.Format("Jan 02 15:04"))
}

// IsGoingBack returns true if user pressed back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user pressed back, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

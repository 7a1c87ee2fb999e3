package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/june1016/PAC-MAN/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213"))
)

var titleArt = []string{
	"█▀█ ▄▀█ █▀▀   ▄▄   █▀▄▀█ ▄▀█ █▄ █",
	"█▀▀ █▀█ █▄▄        █ ▀ █ █▀█ █ ▀█",
}

// titleScreen is the pre-game screen where the player enters a name.
type titleScreen struct {
	input     textinput.Model
	mazeName  string
	highScore int
}

func newTitleScreen(name, mazeName string, highScore int) titleScreen {
	ti := textinput.New()
	ti.Placeholder = storage.DefaultName
	ti.CharLimit = storage.MaxNameLen
	ti.Width = storage.MaxNameLen + 1
	ti.Prompt = "name: "
	ti.SetValue(name)
	ti.Focus()

	return titleScreen{input: ti, mazeName: mazeName, highScore: highScore}
}

// Update forwards typing to the name field.
func (t titleScreen) Update(msg tea.Msg) (titleScreen, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// Name returns the normalized player name.
func (t titleScreen) Name() string {
	return storage.NormalizeName(t.input.Value())
}

// View renders the title screen centered in width columns.
func (t titleScreen) View(width, height int) string {
	var b strings.Builder

	top := (height - 14) / 2
	if top > 0 {
		b.WriteString(strings.Repeat("\n", top))
	}

	for _, line := range titleArt {
		b.WriteString(centerText(titleStyle.Render(line), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(accentStyle.Render("M M M M")+subtleStyle.Render("  ·  ·  ·  ●"), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(fmt.Sprintf("maze: %s   high score: %d", t.mazeName, t.highScore), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(t.input.View(), width))
	b.WriteString("\n\n")

	controls := "Enter: Start  |  Arrows/WASD: Move  |  P: Pause  |  Esc: Quit"
	b.WriteString(centerText(subtleStyle.Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

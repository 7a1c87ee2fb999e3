package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/june1016/PAC-MAN/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"j", runeKey('j'), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := keys.MapKey(tc.msg)
			if got != tc.want || quit != tc.isQuit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), got, quit, tc.want, tc.isQuit)
			}
		})
	}
}

func TestMapKeyToFrameKeepsLastDirection(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	keys.MapKeyToFrame(runeKey('w'), &frame)
	keys.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)

	if got := frame.Movement(); got != core.ActionLeft {
		t.Errorf("Movement() = %v, expected Left", got)
	}
	if keys.MapKeyToFrame(runeKey('x'), &frame) {
		t.Error("unbound key reported as quit")
	}
}

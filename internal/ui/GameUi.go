package ui

import (
	"github.com/Mshel/crumble/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// gameKeyMap is the in-game bindings. It satisfies help.KeyMap for the
// footer.
type gameKeyMap struct {
	Up    key.Binding
	Left  key.Binding
	Down  key.Binding
	Right key.Binding
	Mute  key.Binding
	Help  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var gameKeys = gameKeyMap{
	Up: key.NewBinding(
		key.WithKeys("w", "up"),
		key.WithHelp("w/↑", "up"),
	),
	Left: key.NewBinding(
		key.WithKeys("a", "left"),
		key.WithHelp("a/←", "left"),
	),
	Down: key.NewBinding(
		key.WithKeys("s", "down"),
		key.WithHelp("s/↓", "down"),
	),
	Right: key.NewBinding(
		key.WithKeys("d", "right"),
		key.WithHelp("d/→", "right"),
	),
	Mute: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mute"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Help, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Left, k.Down, k.Right},
		{k.Mute, k.Back, k.Help, k.Quit},
	}
}

// direction maps a key press to a walking direction.
func (k gameKeyMap) direction(msg tea.KeyMsg) (game.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return game.Up, true
	case key.Matches(msg, k.Left):
		return game.Left, true
	case key.Matches(msg, k.Down):
		return game.Down, true
	case key.Matches(msg, k.Right):
		return game.Right, true
	}
	return 0, false
}

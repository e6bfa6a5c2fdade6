package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	introStart = iota
	introJournal
	introButtonCount
)

var introLabels = [introButtonCount]string{"Start Walking", "View Journal"}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introStart, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.selected = (m.selected + introButtonCount - 1) % introButtonCount
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % introButtonCount
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

var crumbleAscii = `
  ▄▄▄▄  ▄▄▄▄▄  ▄   ▄  ▄▄   ▄▄  ▄▄▄▄   ▄      ▄▄▄▄▄
 █      █   █  █   █  █ ▀▄▀ █  █   █  █      █
 █      █▀▀▀▄  █   █  █     █  █▀▀▀▄  █      █▀▀▀
 █      █   █  █   █  █     █  █   █  █      █
  ▀▀▀▀  ▀   ▀   ▀▀▀   ▀     ▀  ▀▀▀▀   ▀▀▀▀▀  ▀▀▀▀▀
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("172"))

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	introButtonStyle = lipgloss.NewStyle().
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("172")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(crumbleAscii))
	sb.WriteString("\n")
	sb.WriteString(taglineStyle.Render("walk the ruins while they fall apart"))

	buttons := make([]string, introButtonCount)
	for i, label := range introLabels {
		if i == m.selected {
			buttons[i] = introSelectedButtonStyle.Render(label)
		} else {
			buttons[i] = introButtonStyle.Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		sb.String(),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		faintStyle.Render("←/→ choose · enter select · q quit"),
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

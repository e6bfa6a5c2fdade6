package ui

import (
	"strconv"
	"strings"

	"github.com/Mshel/crumble/internal/config"
	"github.com/Mshel/crumble/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("172")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	submitButtonStyle  = buttonStyle.BorderForeground(focusedColor)
	blurredButtonStyle = buttonStyle.BorderForeground(blurredColor)
)

const (
	focusSeed = iota
	focusMap
	focusSubmit
	focusCount
)

type SetupModel struct {
	seedInput  textinput.Model
	mapOptions []string
	mapIndex   int
	focusIndex int
	err        string
	width      int
	height     int
}

// MapChoices lists the maps a game can start on: the configured map file
// first when there is one, then every built-in map.
func MapChoices(settings config.Settings) []string {
	var choices []string
	if settings.MapFile != "" {
		choices = append(choices, settings.MapFile)
	}
	return append(choices, game.MapNames()...)
}

func NewInitialSetupModel(settings config.Settings, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "random"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle
	if settings.Seed != 0 {
		ti.SetValue(strconv.FormatUint(settings.Seed, 10))
	}

	options := MapChoices(settings)
	index := 0
	for i, name := range options {
		if name == settings.Map && settings.MapFile == "" {
			index = i
		}
	}

	return SetupModel{
		seedInput:  ti,
		mapOptions: options,
		mapIndex:   index,
		focusIndex: focusSeed,
		width:      w,
		height:     h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) setFocus(index int) SetupModel {
	m.focusIndex = (index + focusCount) % focusCount
	if m.focusIndex == focusSeed {
		m.seedInput.Focus()
	} else {
		m.seedInput.Blur()
	}
	return m
}

func (m SetupModel) submit() (SetupModel, tea.Cmd) {
	var seed uint64
	if raw := strings.TrimSpace(m.seedInput.Value()); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			m.err = "seed must be a whole number"
			return m.setFocus(focusSeed), nil
		}
		seed = parsed
	}
	m.err = ""

	msg := SetupSubmitMsg{Seed: seed, Map: m.mapOptions[m.mapIndex]}
	return m, func() tea.Msg { return msg }
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		switch s {
		case "esc":
			return m, func() tea.Msg { return BackToIntroMsg{} }
		case "tab", "down":
			return m.setFocus(m.focusIndex + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focusIndex - 1), nil
		case "enter":
			if m.focusIndex == focusSubmit {
				return m.submit()
			}
			return m.setFocus(m.focusIndex + 1), nil
		}

		if m.focusIndex == focusMap {
			switch s {
			case "left", "h":
				m.mapIndex = (m.mapIndex - 1 + len(m.mapOptions)) % len(m.mapOptions)
			case "right", "l":
				m.mapIndex = (m.mapIndex + 1) % len(m.mapOptions)
			}
			return m, nil
		}

		if m.focusIndex == focusSeed {
			var cmd tea.Cmd
			m.seedInput, cmd = m.seedInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}
	label := func(text string, focus int) string {
		if m.focusIndex == focus {
			return focusedStyle.Render(text)
		}
		return blurredStyle.Render(text)
	}

	var b strings.Builder

	b.WriteString(center(label("Seed (empty for random)", focusSeed)))
	b.WriteString("\n")
	b.WriteString(center(m.seedInput.View()))
	b.WriteString("\n\n")

	b.WriteString(center(label("Map (use arrows)", focusMap)))
	b.WriteString("\n")
	picker := "◀ " + m.mapOptions[m.mapIndex] + " ▶"
	b.WriteString(center(label(picker, focusMap)))
	b.WriteString("\n\n")

	if m.focusIndex == focusSubmit {
		b.WriteString(center(submitButtonStyle.Render("Start")))
	} else {
		b.WriteString(center(blurredButtonStyle.Render("Start")))
	}
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(center(errorStyle.Render(m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center(helpStyle.Render("(tab/shift+tab to move, arrows to pick a map, enter to confirm, esc to go back)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

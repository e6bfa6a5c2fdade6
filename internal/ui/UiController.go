package ui

import (
	"github.com/Mshel/crumble/internal/audio"
	"github.com/Mshel/crumble/internal/config"
	"github.com/Mshel/crumble/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	JournalScreen
)

// Messages for state transitions
type IntroSubmitMsg int

type SetupSubmitMsg struct {
	Seed uint64
	Map  string
}

// Session carries what every game started from the menu shares. Sound and
// Journal are optional.
type Session struct {
	Settings config.Settings
	Sound    *audio.SoundManager
	Journal  *game.Journal
	Logger   *log.Logger
}

type ControllerModel struct {
	CurrentScreen Screen
	Session       Session

	IntroModel   tea.Model
	SetupModel   tea.Model
	GameModel    tea.Model
	JournalModel tea.Model

	ScreenWidth  int
	ScreenHeight int
	err          error
}

func NewControllerModel(session Session, screenWidth int, screenHeight int) ControllerModel {
	if session.Logger == nil {
		session.Logger = log.Default()
	}
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Session:       session,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(session.Settings, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		if m.err != nil {
			return lipgloss.JoinVertical(lipgloss.Center, m.IntroModel.View(), errorStyle.Render(m.err.Error()))
		}
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case JournalScreen:
		if m.JournalModel != nil {
			return m.JournalModel.View()
		}
		return "Journal Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		// every screen keeps its own size so switching does not lose it
		var cmds []tea.Cmd
		for _, child := range []*tea.Model{&m.IntroModel, &m.SetupModel, &m.GameModel, &m.JournalModel} {
			if *child != nil {
				*child, cmd = (*child).Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case IntroSubmitMsg:
		m.err = nil
		switch int(msg) {
		case introStart:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case introJournal:
			m.CurrentScreen = JournalScreen
			m.JournalModel = NewJournalModel(m.Session.Journal, m.ScreenWidth, m.ScreenHeight)
			return m, m.JournalModel.Init()
		}
		return m, nil

	case SetupSubmitMsg:
		gameModel, err := NewGameModel(m.Session, msg.Map, msg.Seed, m.ScreenWidth, m.ScreenHeight)
		if err != nil {
			m.Session.Logger.Error("could not start game", "map", msg.Map, "error", err)
			m.err = err
			m.CurrentScreen = IntroScreen
			return m, nil
		}
		m.CurrentScreen = GameScreen
		m.GameModel = gameModel
		return m, m.GameModel.Init()

	case BackToIntroMsg:
		m.CurrentScreen = IntroScreen
		m.GameModel = nil
		m.JournalModel = nil
		return m, m.IntroModel.Init()
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case JournalScreen:
		if m.JournalModel != nil {
			m.JournalModel, cmd = m.JournalModel.Update(msg)
		}
	}

	return m, cmd
}

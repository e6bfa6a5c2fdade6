package ui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Mshel/crumble/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2).
				Width(32)

	statusTitleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle       = lipgloss.NewStyle().Faint(true)
)

// frameMsg drives one simulation tick. The id ties it to the game that
// scheduled it so a stale frame from a previous game is dropped.
type frameMsg struct {
	id int64
	at time.Time
}

// BackToIntroMsg asks the controller to leave the current screen.
type BackToIntroMsg struct{}

var gameIDs atomic.Int64

type walkStats struct {
	walks int
	bumps int
	last  *game.WalkEvent
}

func (s *walkStats) record(ev game.WalkEvent) {
	if ev.Blocked {
		s.bumps++
	} else {
		s.walks++
	}
	s.last = &ev
}

type frameClock struct {
	last time.Time
}

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int
	MapName      string
	Seed         uint64

	id          int64
	gameManager *game.GameManager
	tiles       *TileView
	keys        *KeyState
	session     Session
	stats       *walkStats
	clock       *frameClock
	help        help.Model
	frame       time.Duration
}

// NewGameModel builds a fresh simulation for mapName and wires the tile
// view, sound and journal to it. A zero seed falls back to the configured
// seed, then to the clock.
func NewGameModel(session Session, mapName string, seed uint64, w, h int) (GameViewModel, error) {
	settings := session.Settings
	if session.Logger == nil {
		session.Logger = log.Default()
	}

	var grid *game.Grid
	var err error
	if settings.MapFile != "" && mapName == settings.MapFile {
		grid, err = game.LoadMapFile(mapName)
	} else {
		grid, err = game.LoadBuiltinMap(mapName)
	}
	if err != nil {
		return GameViewModel{}, err
	}

	if seed == 0 {
		seed = settings.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	tiles := NewTileView(grid, session.Logger)
	keys := NewKeyState(settings.KeyHold)

	syncs := game.RenderSyncs{tiles}
	if session.Journal != nil {
		syncs = append(syncs, session.Journal)
	}

	gm, err := game.NewGameManager(game.Options{
		Grid:          grid,
		Start:         game.StartCell,
		Random:        game.NewRandom(seed),
		Input:         keys,
		Sync:          syncs,
		Motion:        settings.Motion(),
		DecayInterval: settings.DecayInterval,
		Logger:        session.Logger,
	})
	if err != nil {
		return GameViewModel{}, err
	}

	stats := &walkStats{}
	gm.OnWalked(stats.record)
	if session.Sound != nil {
		gm.OnWalked(session.Sound.OnWalked)
	}
	if session.Journal != nil {
		gm.OnWalked(session.Journal.RecordWalk)
	}

	session.Logger.Info("Game started", "map", mapName, "seed", seed)

	footer := help.New()
	footer.Width = w

	return GameViewModel{
		ScreenWidth:  w,
		ScreenHeight: h,
		MapName:      mapName,
		Seed:         seed,
		id:           gameIDs.Add(1),
		gameManager:  gm,
		tiles:        tiles,
		keys:         keys,
		session:      session,
		stats:        stats,
		clock:        &frameClock{},
		help:         footer,
		frame:        settings.Frame,
	}, nil
}

func (m GameViewModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m GameViewModel) nextFrame() tea.Cmd {
	id := m.id
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg{id: id, at: t}
	})
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		if msg.id != m.id {
			return m, nil
		}
		delta := m.frame
		if !m.clock.last.IsZero() {
			delta = msg.at.Sub(m.clock.last)
		}
		m.clock.last = msg.at

		m.gameManager.Tick(delta)
		m.tiles.Advance(delta)
		return m, m.nextFrame()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, gameKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, gameKeys.Back):
			return m, func() tea.Msg { return BackToIntroMsg{} }
		case key.Matches(msg, gameKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, gameKeys.Mute):
			if m.session.Sound != nil {
				m.session.Sound.SetMuted(!m.session.Sound.Muted())
			}
			return m, nil
		}
		if d, ok := gameKeys.direction(msg); ok {
			m.keys.Press(d)
		}
	}

	return m, nil
}

func (m GameViewModel) View() string {
	board := lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Render(m.tiles.Render()),
		statusPanelStyle.Render(m.renderStatusPanel()),
	)
	content := lipgloss.JoinVertical(lipgloss.Left, board, m.help.View(gameKeys))

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m GameViewModel) renderStatusPanel() string {
	var sb strings.Builder
	gm := m.gameManager
	player := gm.Player

	sb.WriteString(statusTitleStyle.Render("--- Walker ---") + "\n")
	sb.WriteString(fmt.Sprintf("Cell: %d,%d\n", player.Cell.Col, player.Cell.Row))
	sb.WriteString(fmt.Sprintf("Facing: %s\n", player.Facing))
	sb.WriteString(fmt.Sprintf("Pixel: %.0f,%.0f\n", player.PixelX, player.PixelY))
	sb.WriteString(fmt.Sprintf("State: %s\n", player.State()))
	sb.WriteString(fmt.Sprintf("Anim: %s\n", player.Animation()))
	sb.WriteString(fmt.Sprintf("Walks: %d  Bumps: %d\n", m.stats.walks, m.stats.bumps))
	if last := m.stats.last; last != nil {
		verb := "walked"
		if last.Blocked {
			verb = "bumped"
		}
		sb.WriteString(faintStyle.Render(fmt.Sprintf("last: %s %s", verb, last.Dir)) + "\n")
	}

	sb.WriteString("\n" + statusTitleStyle.Render("--- World ---") + "\n")
	sb.WriteString(fmt.Sprintf("Map: %s\n", m.MapName))
	sb.WriteString(fmt.Sprintf("Seed: %d\n", m.Seed))
	sb.WriteString(fmt.Sprintf("Clock: %s (%d ticks)\n", gm.Clock.Truncate(100*time.Millisecond), gm.Ticks))
	sb.WriteString(fmt.Sprintf("Decayed cells: %d\n", gm.Mutations))
	reachable, walkable := gm.ReachableArea()
	sb.WriteString(fmt.Sprintf("Reachable: %d/%d\n", reachable, walkable))

	sb.WriteString("\n" + statusTitleStyle.Render("--- Session ---") + "\n")
	sound := "off"
	if s := m.session.Sound; s != nil {
		sound = "on"
		if s.Muted() {
			sound = "muted"
		}
	}
	sb.WriteString(fmt.Sprintf("Sound: %s\n", sound))
	if j := m.session.Journal; j != nil {
		sb.WriteString(fmt.Sprintf("Journal run: %s\n", shortRunID(j.RunID)))
	} else {
		sb.WriteString("Journal: off\n")
	}

	return sb.String()
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package ui

import (
	"fmt"
	"strconv"

	"github.com/Mshel/crumble/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const journalPageSize = 15

var (
	journalHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	journalRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	journalBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8"))

	kindColors = map[string]lipgloss.Color{
		game.EntryWalk:  lipgloss.Color("71"),
		game.EntryBump:  lipgloss.Color("204"),
		game.EntryDecay: lipgloss.Color("172"),
	}
)

// RenderJournalTable draws entries as a bordered table, newest first.
func RenderJournalTable(entries []game.JournalEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			shortRunID(e.RunID),
			e.Kind,
			fmt.Sprintf("%d,%d", e.Col, e.Row),
			e.Symbol,
			e.Direction,
			e.CreatedAt.Local().Format("15:04:05"),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(journalBorderStyle).
		Headers("#", "Run", "Kind", "Cell", "Symbol", "Dir", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return journalHeaderStyle
			}
			if col == 2 && row >= 0 && row < len(entries) {
				if c, ok := kindColors[entries[row].Kind]; ok {
					return journalRowStyle.Foreground(c)
				}
			}
			return journalRowStyle
		})

	return t.String()
}

// RenderRunsTable draws one line per recorded run.
func RenderRunsTable(runs []game.RunSummary) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{r.RunID, strconv.Itoa(r.Entries)})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(journalBorderStyle).
		Headers("Run", "Entries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return journalHeaderStyle
			}
			return journalRowStyle
		}).
		String()
}

// JournalModel pages through the journal from the menu.
type JournalModel struct {
	journal *game.Journal
	entries []game.JournalEntry
	runs    int
	page    int
	err     error
	width   int
	height  int
}

func NewJournalModel(journal *game.Journal, w, h int) JournalModel {
	m := JournalModel{journal: journal, width: w, height: h}
	return m.load()
}

func (m JournalModel) load() JournalModel {
	if m.journal == nil {
		return m
	}
	m.journal.Flush()

	entries, err := m.journal.Entries("", journalPageSize, m.page*journalPageSize)
	if err != nil {
		m.err = err
		return m
	}
	runs, err := m.journal.Runs(1000)
	if err != nil {
		m.err = err
		return m
	}
	m.entries = entries
	m.runs = len(runs)
	m.err = nil
	return m
}

func (m JournalModel) Init() tea.Cmd { return nil }

func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			return m, func() tea.Msg { return BackToIntroMsg{} }
		case "q":
			return m, tea.Quit
		case "right", "l", "n":
			if len(m.entries) == journalPageSize {
				m.page++
				m = m.load()
			}
		case "left", "h", "p":
			if m.page > 0 {
				m.page--
				m = m.load()
			}
		}
	}
	return m, nil
}

func (m JournalModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("JOURNAL")
	instruction := faintStyle.Margin(1, 0).Render("←/→ page · esc or enter to return")

	var body string
	switch {
	case m.journal == nil:
		body = "The journal is off. Start with --journal <file> to record runs."
	case m.err != nil:
		body = errorStyle.Render(m.err.Error())
	case len(m.entries) == 0:
		body = "Nothing recorded yet."
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("%d runs recorded, page %d", m.runs, m.page+1),
			RenderJournalTable(m.entries),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, body, instruction)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(content),
	)
}

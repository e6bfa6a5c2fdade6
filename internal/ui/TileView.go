package ui

import (
	"math"
	"strings"
	"time"

	"github.com/Mshel/crumble/internal/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Each grid cell is drawn two terminal columns wide.
const cellColumns = 2

type tileLook struct {
	glyphs [cellColumns]string
	style  lipgloss.Style
}

var (
	groundColor = lipgloss.Color("236")

	tileLooks = map[game.Symbol]tileLook{
		game.WallSymbol:   {glyphs: [cellColumns]string{"▓", "▓"}, style: lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Background(lipgloss.Color("94"))},
		game.FloorSymbol:  {glyphs: [cellColumns]string{" ", " "}, style: lipgloss.NewStyle().Background(groundColor)},
		game.GrassSymbol:  {glyphs: [cellColumns]string{"\"", "'"}, style: lipgloss.NewStyle().Foreground(lipgloss.Color("71")).Background(groundColor)},
		game.GravelSymbol: {glyphs: [cellColumns]string{"∙", ":"}, style: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(groundColor)},
		game.MossSymbol:   {glyphs: [cellColumns]string{"~", "~"}, style: lipgloss.NewStyle().Foreground(lipgloss.Color("65")).Background(groundColor)},
	}

	unknownLook = tileLook{glyphs: [cellColumns]string{"?", "?"}, style: lipgloss.NewStyle().Foreground(lipgloss.Color("9"))}

	entityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Background(groundColor).Bold(true)
)

// TileView is the terminal side of game.RenderSync: it keeps the drawn form
// of every cell plus the entity's position and animation.
type TileView struct {
	rows, cols int
	halves     [][]string

	EntityX    float64
	EntityY    float64
	Animations *Animations
}

func NewTileView(grid *game.Grid, logger *log.Logger) *TileView {
	v := &TileView{
		rows:       grid.Rows(),
		cols:       grid.Cols(),
		halves:     make([][]string, grid.Rows()),
		Animations: NewAnimations(DefaultAnimations(), logger),
	}
	for row, line := range grid.Snapshot() {
		v.halves[row] = make([]string, grid.Cols()*cellColumns)
		for col, symbol := range line {
			v.derive(col, row, symbol)
		}
	}
	return v
}

func (v *TileView) derive(col, row int, symbol game.Symbol) {
	look, ok := tileLooks[symbol]
	if !ok {
		look = unknownLook
	}
	for half := 0; half < cellColumns; half++ {
		v.halves[row][col*cellColumns+half] = look.style.Render(look.glyphs[half])
	}
}

func (v *TileView) OnGridChanged(col, row int, symbol game.Symbol) {
	if row < 0 || row >= v.rows || col < 0 || col >= v.cols {
		return
	}
	v.derive(col, row, symbol)
}

func (v *TileView) OnEntityMoved(x, y float64) {
	v.EntityX = x
	v.EntityY = y
}

func (v *TileView) OnAnimationChanged(key string) {
	v.Animations.Play(key)
}

func (v *TileView) Advance(delta time.Duration) {
	v.Animations.Advance(delta)
}

// EntityColumn is the terminal column the entity starts at. Half a cell of
// progress moves it by one column.
func (v *TileView) EntityColumn() int {
	return int(math.Round(v.EntityX * cellColumns))
}

func (v *TileView) EntityRow() int {
	return int(math.Round(v.EntityY))
}

func (v *TileView) Render() string {
	var sb strings.Builder

	entityRow, entityCol := v.EntityRow(), v.EntityColumn()
	frame := []rune(v.Animations.Frame())

	for row := 0; row < v.rows; row++ {
		for c := 0; c < len(v.halves[row]); c++ {
			offset := c - entityCol
			if row == entityRow && offset >= 0 && offset < len(frame) {
				sb.WriteString(entityStyle.Render(string(frame[offset])))
				continue
			}
			sb.WriteString(v.halves[row][c])
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

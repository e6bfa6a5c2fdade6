package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrInvalidSymbol = errors.New("invalid cell symbol")
)

// Symbol is the single character code stored in a cell.
type Symbol byte

const (
	WallSymbol   Symbol = '0'
	FloorSymbol  Symbol = '1'
	GrassSymbol  Symbol = '2'
	GravelSymbol Symbol = '3'
	MossSymbol   Symbol = '4'
)

// Alphabet lists every symbol a cell may hold, in decay pick order.
var Alphabet = []Symbol{WallSymbol, FloorSymbol, GrassSymbol, GravelSymbol, MossSymbol}

func (s Symbol) String() string {
	return string(rune(s))
}

func (s Symbol) Valid() bool {
	for _, known := range Alphabet {
		if s == known {
			return true
		}
	}
	return false
}

func (s Symbol) Solid() bool {
	return s == WallSymbol
}

type Cell struct {
	Col, Row int
}

// Grid keeps its shape for its whole life; only cell contents change.
type Grid struct {
	rows  int
	cols  int
	cells [][]Symbol
}

// NewGrid copies rows into a new grid. All rows must share one length and
// every symbol must belong to the Alphabet.
func NewGrid(rows [][]Symbol) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("grid must have at least one row and one column")
	}

	cols := len(rows[0])
	cells := make([][]Symbol, len(rows))
	for row, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", row, len(line), cols)
		}
		for col, symbol := range line {
			if !symbol.Valid() {
				return nil, fmt.Errorf("cell (%d, %d) %q: %w", col, row, rune(symbol), ErrInvalidSymbol)
			}
		}
		cells[row] = append([]Symbol(nil), line...)
	}

	return &Grid{rows: len(rows), cols: cols, cells: cells}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) contains(col, row int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) Get(col, row int) (Symbol, error) {
	if !g.contains(col, row) {
		return 0, fmt.Errorf("get (%d, %d) on %dx%d grid: %w", col, row, g.cols, g.rows, ErrOutOfBounds)
	}
	return g.cells[row][col], nil
}

func (g *Grid) Set(col, row int, symbol Symbol) error {
	if !symbol.Valid() {
		return fmt.Errorf("set (%d, %d) to %q: %w", col, row, rune(symbol), ErrInvalidSymbol)
	}
	if !g.contains(col, row) {
		return fmt.Errorf("set (%d, %d) on %dx%d grid: %w", col, row, g.cols, g.rows, ErrOutOfBounds)
	}
	g.cells[row][col] = symbol
	return nil
}

// IsSolid reports whether the cell blocks movement. Anything off the grid
// counts as solid.
func (g *Grid) IsSolid(col, row int) bool {
	if !g.contains(col, row) {
		return true
	}
	return g.cells[row][col].Solid()
}

func (g *Grid) Snapshot() [][]Symbol {
	out := make([][]Symbol, g.rows)
	for row := range g.cells {
		out[row] = append([]Symbol(nil), g.cells[row]...)
	}
	return out
}

func (g *Grid) String() string {
	var sb strings.Builder
	for row := range g.cells {
		for _, symbol := range g.cells[row] {
			sb.WriteByte(byte(symbol))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridGetSet(t *testing.T) {
	grid := mustParse(t, boxMap)

	assert.Equal(t, 3, grid.Rows())
	assert.Equal(t, 4, grid.Cols())

	symbol, err := grid.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, FloorSymbol, symbol)

	for _, s := range Alphabet {
		require.NoError(t, grid.Set(2, 1, s))
		got, err := grid.Get(2, 1)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestGridSetThenGetAnyShape(t *testing.T) {
	for rows := 1; rows <= 4; rows++ {
		for cols := 1; cols <= 5; cols++ {
			lines := make([][]Symbol, rows)
			for r := range lines {
				lines[r] = make([]Symbol, cols)
				for c := range lines[r] {
					lines[r][c] = FloorSymbol
				}
			}
			grid, err := NewGrid(lines)
			require.NoError(t, err)

			for row := 0; row < rows; row++ {
				for col := 0; col < cols; col++ {
					for _, s := range Alphabet {
						require.NoError(t, grid.Set(col, row, s))
						got, err := grid.Get(col, row)
						require.NoError(t, err)
						require.Equal(t, s, got, "%dx%d at (%d,%d)", cols, rows, col, row)
					}
				}
			}
		}
	}
}

func TestGridRejectsInvalidSymbol(t *testing.T) {
	grid := mustParse(t, boxMap)
	before := grid.String()

	err := grid.Set(1, 1, Symbol('x'))
	assert.ErrorIs(t, err, ErrInvalidSymbol)
	assert.Equal(t, before, grid.String())
}

func TestGridOutOfBounds(t *testing.T) {
	grid := mustParse(t, boxMap)

	cells := []Cell{{Col: -1, Row: 0}, {Col: 0, Row: -1}, {Col: 4, Row: 0}, {Col: 0, Row: 3}}
	for _, c := range cells {
		_, err := grid.Get(c.Col, c.Row)
		assert.ErrorIs(t, err, ErrOutOfBounds, "get %v", c)
		assert.ErrorIs(t, grid.Set(c.Col, c.Row, FloorSymbol), ErrOutOfBounds, "set %v", c)
		assert.True(t, grid.IsSolid(c.Col, c.Row), "off-grid %v should be solid", c)
	}
}

func TestGridIsSolid(t *testing.T) {
	grid := mustParse(t, boxMap)

	assert.True(t, grid.IsSolid(0, 0))
	assert.False(t, grid.IsSolid(1, 1))
	// asking twice without a change gives the same answer
	assert.Equal(t, grid.IsSolid(2, 1), grid.IsSolid(2, 1))

	require.NoError(t, grid.Set(2, 1, WallSymbol))
	assert.True(t, grid.IsSolid(2, 1))

	for _, s := range []Symbol{FloorSymbol, GrassSymbol, GravelSymbol, MossSymbol} {
		require.NoError(t, grid.Set(2, 1, s))
		assert.False(t, grid.IsSolid(2, 1), "symbol %s", s)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	grid := mustParse(t, boxMap)
	snap := grid.Snapshot()
	snap[1][1] = WallSymbol

	assert.False(t, grid.IsSolid(1, 1))
}

func TestParseMapErrors(t *testing.T) {
	_, err := ParseMap("")
	assert.Error(t, err)

	_, err = ParseMap("000\n00\n")
	assert.ErrorContains(t, err, "row 1")

	_, err = ParseMap("000\n0x0\n")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestBuiltinMaps(t *testing.T) {
	for _, name := range MapNames() {
		grid, err := LoadBuiltinMap(name)
		require.NoError(t, err, name)
		assert.False(t, grid.IsSolid(StartCell.Col, StartCell.Row), "%s start cell must be walkable", name)
	}

	_, err := LoadBuiltinMap("nowhere")
	assert.Error(t, err)
}

func TestLoadMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.txt")
	require.NoError(t, os.WriteFile(path, []byte(cellMap), 0o644))

	grid, err := LoadMapFile(path)
	require.NoError(t, err)
	assert.Equal(t, "000\n010\n000\n", grid.String())

	_, err = LoadMapFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirections(t *testing.T) {
	assert.Equal(t, Cell{Col: 1, Row: 0}, Cell{Col: 1, Row: 1}.Step(Up))
	assert.Equal(t, Cell{Col: 0, Row: 1}, Cell{Col: 1, Row: 1}.Step(Left))
	assert.Equal(t, Cell{Col: 1, Row: 2}, Cell{Col: 1, Row: 1}.Step(Down))
	assert.Equal(t, Cell{Col: 2, Row: 1}, Cell{Col: 1, Row: 1}.Step(Right))

	assert.Equal(t, Right, Up.Clockwise())
	assert.Equal(t, Up, Left.Clockwise())

	d, err := ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

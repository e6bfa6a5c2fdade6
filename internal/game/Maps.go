package game

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Maps holds the built-in levels. '0' is wall, '1'..'4' are walkable ground.
var Maps = map[string]string{
	"start": `
0000000000000000
0111112221111110
0101001221001010
0111111111111110
0133000110003310
0111041111401110
0111041111401110
0133000110003310
0111111111111110
0101001221001010
0111112221111110
0000000000000000
`,
	"courtyard": `
00000000000000
01111111111110
01222222222210
01233333333210
01234444443210
01234000043210
01234000043210
01234444443210
01233333333210
01222222222210
01111111111110
00000000000000
`,
	"corridors": `
000000000000000000
011111110111111110
010000010100000010
010111110111111010
010100000000001010
011111111111111110
000001000000100000
011111111111111110
010100000000001010
010111110111111010
010000010100000010
011111110111111110
000000000000000000
`,
}

// MapNames returns the built-in map names in a stable order.
func MapNames() []string {
	names := make([]string, 0, len(Maps))
	for name := range Maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseMap turns map text into a Grid. Blank lines and surrounding
// whitespace are ignored.
func ParseMap(text string) (*Grid, error) {
	var rows [][]Symbol
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]Symbol, len(line))
		for i := 0; i < len(line); i++ {
			row[i] = Symbol(line[i])
		}
		rows = append(rows, row)
	}

	grid, err := NewGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return grid, nil
}

func LoadBuiltinMap(name string) (*Grid, error) {
	text, ok := Maps[name]
	if !ok {
		return nil, fmt.Errorf("map %q not found", name)
	}
	return ParseMap(text)
}

func LoadMapFile(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file '%s': %w", path, err)
	}
	return ParseMap(string(data))
}

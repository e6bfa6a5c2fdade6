package game

// ReachableCells flood fills from start across walkable cells and returns
// how many the walker could reach on the grid as it is now. A solid start
// reaches nothing.
func ReachableCells(grid *Grid, start Cell) int {
	if grid.IsSolid(start.Col, start.Row) {
		return 0
	}

	q := []Cell{start}
	seen := map[Cell]bool{start: true}

	for len(q) > 0 {
		current := q[0]
		q = q[1:]

		for _, dir := range Directions {
			next := current.Step(dir)
			if seen[next] || grid.IsSolid(next.Col, next.Row) {
				continue
			}
			seen[next] = true
			q = append(q, next)
		}
	}

	return len(seen)
}

// ReachableArea is the share of walkable cells the player can still get to.
func (gm *GameManager) ReachableArea() (reachable, walkable int) {
	for _, row := range gm.Grid.Snapshot() {
		for _, s := range row {
			if !s.Solid() {
				walkable++
			}
		}
	}
	return ReachableCells(gm.Grid, gm.Player.Cell), walkable
}

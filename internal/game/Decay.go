package game

import (
	"time"

	"github.com/charmbracelet/log"
)

type Mutation struct {
	Col, Row int
	Symbol   Symbol
	Previous Symbol
}

// Decay rewrites one random cell with one random symbol each time more than
// Interval has accumulated. A cell may be rewritten with the symbol it
// already holds.
type Decay struct {
	Interval time.Duration

	elapsed time.Duration
	grid    *Grid
	rng     Random
	sync    RenderSync
	logger  *log.Logger
}

func NewDecay(grid *Grid, rng Random, sync RenderSync, interval time.Duration, logger *log.Logger) *Decay {
	if sync == nil {
		sync = NopRenderSync{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Decay{
		Interval: interval,
		grid:     grid,
		rng:      rng,
		sync:     sync,
		logger:   logger,
	}
}

func (d *Decay) Elapsed() time.Duration {
	return d.elapsed
}

func (d *Decay) Update(delta time.Duration) (Mutation, bool) {
	d.elapsed += delta
	if d.elapsed <= d.Interval {
		return Mutation{}, false
	}
	d.elapsed = 0

	row := Within(d.rng, 0, d.grid.Rows())
	col := Within(d.rng, 0, d.grid.Cols())
	symbol := Pick(d.rng, Alphabet)

	previous, err := d.grid.Get(col, row)
	if err == nil {
		err = d.grid.Set(col, row, symbol)
	}
	if err != nil {
		d.logger.Error("map decay failed", "col", col, "row", row, "symbol", symbol, "error", err)
		return Mutation{}, false
	}

	d.logger.Debug("Updating map", "col", col, "row", row, "from", previous, "to", symbol)
	d.sync.OnGridChanged(col, row, symbol)

	return Mutation{Col: col, Row: row, Symbol: symbol, Previous: previous}, true
}

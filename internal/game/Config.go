package game

import "time"

const (
	FrameDuration     = 16 * time.Millisecond
	WalkDuration      = 400 * time.Millisecond
	BumpDuration      = 100 * time.Millisecond
	RestDuration      = 200 * time.Millisecond
	DecayInterval     = 250 * time.Millisecond
	BumpReach         = 0.1
	CellWidth         = 64
	CellHeight        = 64
	DefaultMapName    = "start"
	journalQueueDepth = 256
)

// StartCell is where the player spawns on every built-in map.
var StartCell = Cell{Col: 1, Row: 1}

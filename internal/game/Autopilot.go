package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// DefaultAutopilotScript keeps walking forward and turns clockwise whenever
// the next cell is solid.
const DefaultAutopilotScript = `
local deltas = {up = {0, -1}, left = {-1, 0}, down = {0, 1}, right = {1, 0}}
local clockwise = {up = "right", right = "down", down = "left", left = "up"}

function nextDirection(col, row, facing, state)
	local dir = facing
	for _ = 1, 4 do
		local d = deltas[dir]
		if not solid(col + d[1], row + d[2]) then
			return dir
		end
		dir = clockwise[dir]
	end
	return nil
end
`

const autopilotEntryPoint = "nextDirection"

// Viewer exposes the player's current logical state.
type Viewer interface {
	View() PlayerView
}

// Autopilot is an InputSource driven by a Lua script. The script is asked
// at most once per tick, and only when the player is ready to walk.
type Autopilot struct {
	luaState *lua.LState
	grid     SolidityQuery
	viewer   Viewer
	logger   *log.Logger

	stale   bool
	desired Direction
	active  bool
}

func NewAutopilot(script string, grid SolidityQuery, logger *log.Logger) (*Autopilot, error) {
	if logger == nil {
		logger = log.Default()
	}
	if script == "" {
		script = DefaultAutopilotScript
	}

	a := &Autopilot{
		luaState: lua.NewState(),
		grid:     grid,
		logger:   logger,
		stale:    true,
	}
	a.luaState.SetGlobal("solid", a.luaState.NewFunction(a.luaSolid))

	if err := a.luaState.DoString(script); err != nil {
		a.luaState.Close()
		return nil, fmt.Errorf("could not parse autopilot script: %w", err)
	}
	if a.luaState.GetGlobal(autopilotEntryPoint).Type() != lua.LTFunction {
		a.luaState.Close()
		return nil, errors.New("autopilot script must define function " + autopilotEntryPoint)
	}

	return a, nil
}

func LoadAutopilotFile(path string, grid SolidityQuery, logger *log.Logger) (*Autopilot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read autopilot script '%s': %w", path, err)
	}
	return NewAutopilot(string(data), grid, logger)
}

// Attach sets the player the script steers.
func (a *Autopilot) Attach(viewer Viewer) {
	a.viewer = viewer
}

func (a *Autopilot) Refresh(time.Duration, PlayerView) {
	a.stale = true
}

func (a *Autopilot) IsDirectionActive(d Direction) bool {
	if a.stale {
		a.stale = false
		a.active = false
		if a.viewer != nil {
			a.desired, a.active = a.nextDirection(a.viewer.View())
		}
	}
	return a.active && a.desired == d
}

func (a *Autopilot) Close() {
	a.luaState.Close()
}

func (a *Autopilot) nextDirection(view PlayerView) (Direction, bool) {
	err := a.luaState.CallByParam(lua.P{
		Fn:      a.luaState.GetGlobal(autopilotEntryPoint),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(view.Cell.Col), lua.LNumber(view.Cell.Row), lua.LString(view.Facing.String()), lua.LString(view.State.String()))
	if err != nil {
		a.logger.Error("autopilot script failed", "error", err)
		return 0, false
	}

	ret := a.luaState.Get(-1)
	a.luaState.Pop(1)

	if ret == lua.LNil {
		return 0, false
	}
	if ret.Type() != lua.LTString {
		a.logger.Warn("autopilot returned a non-string direction", "type", ret.Type().String())
		return 0, false
	}

	dir, err := ParseDirection(lua.LVAsString(ret))
	if err != nil {
		a.logger.Warn("autopilot returned an unknown direction", "error", err)
		return 0, false
	}
	return dir, true
}

func (a *Autopilot) luaSolid(L *lua.LState) int {
	col := L.CheckInt(1)
	row := L.CheckInt(2)
	L.Push(lua.LBool(a.grid.IsSolid(col, row)))
	return 1
}

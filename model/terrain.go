package model

// TerrainType classifies a single board cell.
type TerrainType byte

const (
	Land   TerrainType = 0 // passable ground
	Water  TerrainType = 1 // impassable
	Cliff  TerrainType = 2 // impassable (rock, tree, wall)
	Bridge TerrainType = 3 // passable corridor over water
)

// TerrainGrid covers the board one entry per cell. It is optional: a snapshot
// without one is treated as open ground.
type TerrainGrid struct {
	Cols  int           `json:"cols"`
	Rows  int           `json:"rows"`
	Cells []TerrainType `json:"cells"` // row-major: Cells[y*Cols + x]
}

// At returns the terrain type at (x, y).
// Returns Land for a nil grid, out-of-bounds coordinates or a short Cells slice.
func (g *TerrainGrid) At(x, y int) TerrainType {
	if g == nil || x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
		return Land
	}
	i := y*g.Cols + x
	if i >= len(g.Cells) {
		return Land
	}
	return g.Cells[i]
}

// Passable reports whether a unit can stand on or cross (x, y).
func (g *TerrainGrid) Passable(x, y int) bool {
	switch g.At(x, y) {
	case Water, Cliff:
		return false
	default:
		return true
	}
}

// HasBlockers returns true if any cell is impassable.
func (g *TerrainGrid) HasBlockers() bool {
	if g == nil {
		return false
	}
	for _, t := range g.Cells {
		if t == Water || t == Cliff {
			return true
		}
	}
	return false
}

// Package pathfind runs a bounded A* search over the battle grid.
package pathfind

import (
	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/pqueue"
)

// DefaultMaxExpansions caps how many cells a single search may expand.
const DefaultMaxExpansions = 100

// Outcome tells the caller how much to trust a returned path.
type Outcome int

const (
	NoPath  Outcome = iota // goal invalid, nothing returned
	Found                  // path runs from start to goal
	Partial                // budget or open set ran out; trace to the last expanded cell
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Partial:
		return "partial"
	default:
		return "no_path"
	}
}

// Cardinal steps in expansion order. Order matters for tie-breaking between
// equal-cost routes, so keep it stable.
var directions = [4]model.Position{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// Finder holds search limits. It carries no per-search state and is safe
// for concurrent use.
type Finder struct {
	MaxExpansions int
}

// New returns a Finder with the given expansion budget; non-positive values
// fall back to DefaultMaxExpansions.
func New(maxExpansions int) *Finder {
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}
	return &Finder{MaxExpansions: maxExpansions}
}

func (f *Finder) budget() int {
	if f == nil || f.MaxExpansions <= 0 {
		return DefaultMaxExpansions
	}
	return f.MaxExpansions
}

// FindPath searches a cardinal-step route from start to goal.
//
// The goal may hold a live unit; every other cell on the route must be free
// and walkable. When the expansion budget runs out (or the open set drains)
// the route to the last expanded cell comes back as Partial: it starts at
// start but does not reach goal.
func (f *Finder) FindPath(snap *model.Snapshot, start, goal model.Position) (model.Path, Outcome) {
	if snap == nil || !snap.Walkable(goal) {
		return nil, NoPath
	}
	if start == goal {
		return model.Path{start}, Found
	}

	occupied := snap.Occupancy()
	// Open terrain (or no grid) only needs the bounds check per cell.
	terrain := snap.Terrain.HasBlockers()
	open := pqueue.New[model.Position]()
	closed := make(map[model.Position]bool)
	gScore := map[model.Position]float64{start: 0}
	from := make(map[model.Position]model.Position)

	open.Insert(start, model.Distance(start, goal))

	var current model.Position
	for range f.budget() {
		next, ok := open.Pop()
		if !ok {
			break
		}
		current = next

		if current == goal {
			return reconstruct(from, current), Found
		}
		closed[current] = true

		for _, d := range directions {
			n := model.Position{X: current.X + d.X, Y: current.Y + d.Y}
			if closed[n] || !enterable(snap, terrain, occupied, n, goal) {
				continue
			}

			tentative := gScore[current] + 1
			if best, seen := gScore[n]; seen && tentative >= best {
				continue
			}
			from[n] = current
			gScore[n] = tentative
			fScore := tentative + model.Distance(n, goal)

			if open.Contains(n, samePosition) {
				open.Update(n, fScore, samePosition)
			} else {
				open.Insert(n, fScore)
			}
		}
	}

	return reconstruct(from, current), Partial
}

// FindPath runs a search with the default budget.
func FindPath(snap *model.Snapshot, start, goal model.Position) (model.Path, Outcome) {
	return New(DefaultMaxExpansions).FindPath(snap, start, goal)
}

// enterable applies the goal-occupancy exception: the goal only needs to be
// walkable, intermediate cells must also be free. Terrain is consulted only
// when the grid has impassable cells.
func enterable(snap *model.Snapshot, terrain bool, occupied map[model.Position]bool, p, goal model.Position) bool {
	if !snap.InBounds(p) || (terrain && !snap.Terrain.Passable(p.X, p.Y)) {
		return false
	}
	return p == goal || !occupied[p]
}

func samePosition(a, b model.Position) bool { return a == b }

func reconstruct(from map[model.Position]model.Position, end model.Position) model.Path {
	path := model.Path{end}
	for {
		prev, ok := from[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

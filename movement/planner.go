// Package movement turns a route into the furthest cell a unit can reach this phase.
package movement

import (
	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/pathfind"
)

// Planner wraps a pathfinder with the reachability rule.
type Planner struct {
	Finder *pathfind.Finder
}

func New(finder *pathfind.Finder) *Planner {
	if finder == nil {
		finder = pathfind.New(pathfind.DefaultMaxExpansions)
	}
	return &Planner{Finder: finder}
}

// PlanApproach returns the furthest free cell along the route to dest whose
// straight-line distance from the unit's position fits its move allowance.
//
// ok is false when the unit cannot move, is already at dest, dest is
// invalid, or no cell past the start is reachable. Reachability is measured
// from the origin, not by counting path steps, so a diagonal zig-zag of two
// steps costs √2.
func (p *Planner) PlanApproach(snap *model.Snapshot, unit model.Unit, dest model.Position) (model.Position, bool) {
	if snap == nil {
		return model.Position{}, false
	}
	allowance := float64(snap.MoveDistance(unit.Type))
	if allowance <= 0 {
		return model.Position{}, false
	}
	origin := unit.Position
	if origin == dest {
		return model.Position{}, false
	}

	path, outcome := p.Finder.FindPath(snap, origin, dest)
	if outcome == pathfind.NoPath || len(path) < 2 {
		return model.Position{}, false
	}

	occupied := snap.Occupancy()
	var best model.Position
	found := false
	for _, cell := range path[1:] {
		if model.Distance(origin, cell) > allowance {
			break
		}
		// Only the goal can be occupied on a route; a unit never ends its
		// move on top of another.
		if occupied[cell] {
			continue
		}
		best, found = cell, true
	}
	return best, found
}

var defaultPlanner = New(nil)

// PlanApproach plans with the default search budget.
func PlanApproach(snap *model.Snapshot, unit model.Unit, dest model.Position) (model.Position, bool) {
	return defaultPlanner.PlanApproach(snap, unit, dest)
}

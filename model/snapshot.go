package model

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Position is a board cell. It is comparable, so it doubles as a map key.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// Path is an ordered run of cells from start to goal, one cardinal step apart.
type Path []Position

type Unit struct {
	ID         int      `json:"id"`
	Team       int      `json:"team"`
	Type       string   `json:"type"`
	Initiative int      `json:"initiative"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"maxHp"`
	Position   Position `json:"position"`
}

func (u Unit) IsAlive() bool { return u.HP > 0 }

// Snapshot is the read-only battle view handed over for a single decision.
// Nothing in the decision path writes to it.
type Snapshot struct {
	Turn          int          `json:"turn"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	Units         []Unit       `json:"units"`
	UnitActionMap ActionTable  `json:"unit_action_map"`
	Terrain       *TerrainGrid `json:"terrain,omitempty"`
}

// NextTurnInput is the request body the orchestration server sends per phase.
type NextTurnInput struct {
	State         Snapshot `json:"state"`
	CurrentUnitID int      `json:"current_unit_id"`
	ActionIndex   Phase    `json:"action_index"`
}

// Distance is the Euclidean distance between two cells.
func Distance(a, b Position) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Unit looks up a unit by ID, dead or alive.
func (s *Snapshot) Unit(id int) (Unit, bool) {
	if s == nil {
		return Unit{}, false
	}
	return lo.Find(s.Units, func(u Unit) bool { return u.ID == id })
}

// Friendly returns the live teammates of the given unit, excluding itself.
func (s *Snapshot) Friendly(id int) []Unit {
	self, ok := s.Unit(id)
	if !ok {
		return nil
	}
	return lo.Filter(s.Units, func(u Unit, _ int) bool {
		return u.Team == self.Team && u.ID != id && u.IsAlive()
	})
}

// Enemies returns the live units on any other team.
func (s *Snapshot) Enemies(id int) []Unit {
	self, ok := s.Unit(id)
	if !ok {
		return nil
	}
	return lo.Filter(s.Units, func(u Unit, _ int) bool {
		return u.Team != self.Team && u.IsAlive()
	})
}

// Actions returns the action map for a unit type; nil when the type is unknown.
func (s *Snapshot) Actions(unitType string) map[string]Action {
	if s == nil || s.UnitActionMap == nil {
		return nil
	}
	return s.UnitActionMap[unitType]
}

// Action looks up a single action descriptor for a unit type.
func (s *Snapshot) Action(unitType, name string) (Action, bool) {
	a, ok := s.Actions(unitType)[name]
	return a, ok
}

// MoveDistance is the unit type's movement allowance, 0 when it cannot move.
func (s *Snapshot) MoveDistance(unitType string) int {
	a, _ := s.Action(unitType, ActionMove)
	return max(a.Distance, 0)
}

func (s *Snapshot) InBounds(p Position) bool {
	if s == nil {
		return false
	}
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Walkable reports whether the cell is on the board and its terrain can be crossed.
// Occupancy is checked separately.
func (s *Snapshot) Walkable(p Position) bool {
	return s.InBounds(p) && s.Terrain.Passable(p.X, p.Y)
}

// IsOccupied reports whether a live unit stands on the cell.
func (s *Snapshot) IsOccupied(p Position) bool {
	if s == nil {
		return false
	}
	return lo.ContainsBy(s.Units, func(u Unit) bool {
		return u.Position == p && u.IsAlive()
	})
}

// Occupancy returns the set of cells held by live units.
func (s *Snapshot) Occupancy() map[Position]bool {
	if s == nil {
		return nil
	}
	out := make(map[Position]bool, len(s.Units))
	for _, u := range s.Units {
		if u.IsAlive() {
			out[u.Position] = true
		}
	}
	return out
}

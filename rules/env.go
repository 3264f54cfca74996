package rules

import (
	"math"

	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/movement"
)

// TurnEnv wraps one decision's inputs and exposes helper methods callable
// from expr expressions. It is built fresh per call and never written back.
type TurnEnv struct {
	Snapshot *model.Snapshot
	Self     model.Unit
	Phase    model.Phase
	Doctrine Doctrine
	planner  *movement.Planner
}

// HasEnemy reports whether any live enemy remains.
func (e TurnEnv) HasEnemy() bool {
	_, ok := NearestEnemy(e.Snapshot, e.Self.ID)
	return ok
}

// EnemyDistance is the distance to the nearest live enemy, or +Inf.
func (e TurnEnv) EnemyDistance() float64 {
	enemy, ok := NearestEnemy(e.Snapshot, e.Self.ID)
	if !ok {
		return math.Inf(1)
	}
	return model.Distance(e.Self.Position, enemy.Position)
}

func (e TurnEnv) CanMove() bool {
	return e.Snapshot.MoveDistance(e.Self.Type) > 0
}

// InRange reports whether the named action reaches the nearest enemy.
func (e TurnEnv) InRange(action string) bool {
	enemy, ok := NearestEnemy(e.Snapshot, e.Self.ID)
	if !ok {
		return false
	}
	return CanPerform(e.Snapshot, e.Self, enemy, action)
}

// CanStrike reports whether any offensive action reaches the nearest enemy.
func (e TurnEnv) CanStrike() bool {
	_, _, ok := e.strikeOption()
	return ok
}

// CanHeal reports whether the unit carries a heal-effect action.
func (e TurnEnv) CanHeal() bool {
	return len(supportOrder(e.Snapshot.Actions(e.Self.Type))) > 0
}

// WoundedInReach counts live friendly units (self included) below the given
// HP ratio that some heal action can reach.
func (e TurnEnv) WoundedInReach(threshold float64) int {
	return len(e.woundedInReach(threshold))
}

// HPRatio is the acting unit's current health fraction.
func (e TurnEnv) HPRatio() float64 {
	return hpRatio(e.Self)
}

func (e TurnEnv) IsSecondAction() bool {
	return e.Phase == model.SecondAction
}

// strikeOption picks the first offensive action, in doctrine order, that
// reaches the nearest enemy.
func (e TurnEnv) strikeOption() (action string, target model.Unit, ok bool) {
	enemy, found := NearestEnemy(e.Snapshot, e.Self.ID)
	if !found {
		return "", model.Unit{}, false
	}
	for _, name := range offensiveOrder(e.Snapshot.Actions(e.Self.Type), e.Doctrine.PreferredActions) {
		if CanPerform(e.Snapshot, e.Self, enemy, name) {
			return name, enemy, true
		}
	}
	return "", model.Unit{}, false
}

type healCandidate struct {
	unit   model.Unit
	action string
}

func (e TurnEnv) woundedInReach(threshold float64) []healCandidate {
	heals := supportOrder(e.Snapshot.Actions(e.Self.Type))
	if len(heals) == 0 {
		return nil
	}
	friends := append([]model.Unit{e.Self}, e.Snapshot.Friendly(e.Self.ID)...)

	var out []healCandidate
	for _, u := range friends {
		if !u.IsAlive() || u.MaxHP <= 0 || hpRatio(u) >= threshold {
			continue
		}
		for _, name := range heals {
			if CanPerform(e.Snapshot, e.Self, u, name) {
				out = append(out, healCandidate{unit: u, action: name})
				break
			}
		}
	}
	return out
}

func hpRatio(u model.Unit) float64 {
	if u.MaxHP <= 0 {
		return 1
	}
	return float64(u.HP) / float64(u.MaxHP)
}

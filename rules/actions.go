package rules

import (
	"log/slog"

	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/movement"
)

// ActionHeal targets the most wounded live ally a heal action can reach.
// Ties on HP ratio go to the acting unit, then snapshot order.
func ActionHeal(env TurnEnv) (model.Decision, bool) {
	candidates := env.woundedInReach(env.Doctrine.HealThreshold)
	if len(candidates) == 0 {
		return model.Decision{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if hpRatio(c.unit) < hpRatio(best.unit) {
			best = c
		}
	}
	slog.Debug("healing ally", "unit", env.Self.ID, "target", best.unit.ID, "action", best.action)
	return model.Target(best.action, best.unit.Position), true
}

// ActionStrike hits the nearest enemy with the first offensive action that
// reaches it.
func ActionStrike(env TurnEnv) (model.Decision, bool) {
	name, enemy, ok := env.strikeOption()
	if !ok {
		return model.Decision{}, false
	}
	slog.Debug("striking enemy", "unit", env.Self.ID, "target", enemy.ID, "action", name)
	return model.Target(name, enemy.Position), true
}

// ActionAdvance moves toward the nearest enemy. It yields nothing when the
// planner finds no reachable cell, letting the engine fall through to hold.
func ActionAdvance(env TurnEnv) (model.Decision, bool) {
	enemy, ok := NearestEnemy(env.Snapshot, env.Self.ID)
	if !ok {
		return model.Decision{}, false
	}
	planner := env.planner
	if planner == nil {
		planner = movement.New(nil)
	}
	cell, ok := planner.PlanApproach(env.Snapshot, env.Self, enemy.Position)
	if !ok {
		return model.Decision{}, false
	}
	slog.Debug("advancing", "unit", env.Self.ID, "toward", enemy.ID, "cell", cell.String())
	return model.Target(model.ActionMove, cell), true
}

func ActionHold(TurnEnv) (model.Decision, bool) {
	return model.Hold(), true
}

package rules

import (
	"log/slog"
	"sync"

	"github.com/nstehr/vimy/tactics-core/model"
)

// NearestEnemy returns the closest live unit on another team. Ties go to the
// unit listed first in the snapshot.
func NearestEnemy(snap *model.Snapshot, unitID int) (model.Unit, bool) {
	self, ok := snap.Unit(unitID)
	if !ok {
		return model.Unit{}, false
	}
	var nearest model.Unit
	found := false
	bestDist := 0.0
	for _, enemy := range snap.Enemies(unitID) {
		d := model.Distance(self.Position, enemy.Position)
		if !found || d < bestDist {
			nearest, bestDist, found = enemy, d, true
		}
	}
	return nearest, found
}

// CanPerform reports whether the attacker's named action reaches the target.
// A missing action or a zero range is never in reach; the boundary is inclusive.
func CanPerform(snap *model.Snapshot, attacker, target model.Unit, actionName string) bool {
	action, ok := snap.Action(attacker.Type, actionName)
	if !ok || action.Range <= 0 {
		return false
	}
	return model.Distance(attacker.Position, target.Position) <= float64(action.Range)
}

var defaultEngine = sync.OnceValue(func() *Engine {
	engine, err := NewEngine(DefaultRules())
	if err != nil {
		// Only reachable if the built-in conditions stop compiling; an empty
		// engine still answers hold.
		slog.Error("default rules failed to compile", "error", err)
		return &Engine{}
	}
	return engine
})

// DecideTurn runs the default rule set for one unit and phase.
func DecideTurn(snap *model.Snapshot, unitID int, phase model.Phase) model.Decision {
	return defaultEngine().Decide(snap, unitID, phase)
}

package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vimy/tactics-core/model"
)

// ActionFunc turns a matched rule into a decision. Returning ok=false lets
// the engine fall through to the next rule, e.g. when an advance finds no
// reachable cell.
type ActionFunc func(env TurnEnv) (decision model.Decision, ok bool)

// Rule is the atomic unit of unit behaviour: a condition → action pair.
// The engine evaluates rules by priority and the first one that matches and
// produces a decision wins.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // "support", "offense", "movement", "fallback"
	ConditionSrc string      // expr source (preserved for serialization)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}

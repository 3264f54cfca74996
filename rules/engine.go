package rules

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/movement"
)

// Engine runs compiled rules against one unit's view of the battle.
// Rules fire in priority order; the first rule whose condition holds and
// whose action yields a decision wins. Nothing is remembered between calls.
type Engine struct {
	mu       sync.RWMutex
	rules    []*Rule
	doctrine Doctrine
	planner  *movement.Planner
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:    compiled,
		doctrine: DefaultDoctrine(),
		planner:  movement.New(nil),
	}, nil
}

// Decide picks the action for unitID in the given phase. It never fails:
// unknown or dead units, a nil snapshot and rule errors all end in hold.
// The phase is informational; both slots run the same selection.
func (e *Engine) Decide(snap *model.Snapshot, unitID int, phase model.Phase) (decision model.Decision) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("decision panicked, holding", "unit", unitID, "phase", phase, "panic", r)
			decision = model.Hold()
		}
	}()

	self, ok := snap.Unit(unitID)
	if !ok {
		slog.Debug("unit not in snapshot, holding", "unit", unitID)
		return model.Hold()
	}
	if !self.IsAlive() {
		slog.Debug("unit is dead, holding", "unit", unitID)
		return model.Hold()
	}

	rules, doctrine, planner := e.state()
	env := TurnEnv{
		Snapshot: snap,
		Self:     self,
		Phase:    phase,
		Doctrine: doctrine,
		planner:  planner,
	}

	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		d, ok := r.Action(env)
		if !ok {
			slog.Debug("rule matched without a decision", "rule", r.Name, "unit", unitID)
			continue
		}

		slog.Debug("rule fired",
			"rule", r.Name,
			"priority", r.Priority,
			"category", r.Category,
			"unit", unitID,
			"phase", phase,
			"action", d.Action,
		)
		return d
	}

	return model.Hold()
}

// Swap atomically replaces the rule set. Compiles first; if compilation
// fails the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	names := make([]string, len(compiled))
	for i, r := range compiled {
		names[i] = r.Name
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()

	slog.Info("rule set swapped", "count", len(compiled), "rules", names)
	return nil
}

// ApplyDoctrine compiles a doctrine and installs its rules and its action
// preferences together, so no decision sees one without the other.
func (e *Engine) ApplyDoctrine(d Doctrine) error {
	d.Validate()
	compiled, err := compileRules(CompileDoctrine(d))
	if err != nil {
		return fmt.Errorf("apply doctrine %q: %w", d.Name, err)
	}
	e.mu.Lock()
	e.rules = compiled
	e.doctrine = d
	e.mu.Unlock()

	slog.Info("doctrine installed", "name", d.Name, "rules", len(compiled))
	return nil
}

// Doctrine returns the doctrine currently in force.
func (e *Engine) Doctrine() Doctrine {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doctrine
}

// SetPlanner replaces the movement planner (e.g. to change the search budget).
func (e *Engine) SetPlanner(p *movement.Planner) {
	e.mu.Lock()
	e.planner = p
	e.mu.Unlock()
}

// state reads the rule set, doctrine and planner as one consistent view.
func (e *Engine) state() ([]*Rule, Doctrine, *movement.Planner) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules, e.doctrine, e.planner
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(TurnEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	// Stable so equal priorities keep declaration order.
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

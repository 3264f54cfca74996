package rules

import (
	"sort"

	"github.com/samber/lo"

	"github.com/nstehr/vimy/tactics-core/model"
)

// Action roles. Every entry of a unit's action table falls into exactly one.
const (
	RoleOffense  = "offense"
	RoleSupport  = "support"
	RoleMovement = "movement"
	RoleIdle     = "idle"
)

// roleOf classifies one action table entry.
func roleOf(name string, a model.Action) string {
	switch {
	case a.Effect == model.EffectHeal && a.Range > 0:
		return RoleSupport
	case a.Offensive():
		return RoleOffense
	case name == model.ActionMove && a.Distance > 0:
		return RoleMovement
	default:
		return RoleIdle
	}
}

// offensiveOrder lists the offensive action names to try, preferred names
// first (in the given order), then by power descending, then by name.
func offensiveOrder(actions map[string]model.Action, preferred []string) []string {
	names := lo.Filter(lo.Keys(actions), func(name string, _ int) bool {
		return roleOf(name, actions[name]) == RoleOffense
	})
	rank := make(map[string]int, len(preferred))
	for i, name := range preferred {
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		ra, aPref := rank[a]
		rb, bPref := rank[b]
		if aPref != bPref {
			return aPref
		}
		if aPref {
			return ra < rb
		}
		if pa, pb := actions[a].Power(), actions[b].Power(); pa != pb {
			return pa > pb
		}
		return a < b
	})
	return names
}

// supportOrder lists heal-effect action names, sorted by name.
func supportOrder(actions map[string]model.Action) []string {
	names := lo.Filter(lo.Keys(actions), func(name string, _ int) bool {
		return roleOf(name, actions[name]) == RoleSupport
	})
	sort.Strings(names)
	return names
}

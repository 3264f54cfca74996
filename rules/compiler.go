package rules

import "fmt"

// Rule categories.
const (
	CategorySupport  = "support"
	CategoryOffense  = "offense"
	CategoryMovement = "movement"
	CategoryFallback = "fallback"
)

const strikePriority = 800

// CompileDoctrine generates a complete rule set from a doctrine's weights.
// All conditions are built via fmt.Sprintf with interpolated values;
// the compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// Support spans 600–1000. At 0.5 it ties with strike and wins on
	// declaration order, so it is appended first.
	rules = append(rules, &Rule{
		Name:         "heal-wounded-ally",
		Priority:     lerp(600, 1000, d.SupportPriority),
		Category:     CategorySupport,
		ConditionSrc: fmt.Sprintf(`CanHeal() && WoundedInReach(%.2f) > 0`, d.HealThreshold),
		Action:       ActionHeal,
	})

	rules = append(rules, &Rule{
		Name:         "strike-nearest-enemy",
		Priority:     strikePriority,
		Category:     CategoryOffense,
		ConditionSrc: `HasEnemy() && CanStrike()`,
		Action:       ActionStrike,
	})

	rules = append(rules, &Rule{
		Name:         "advance-on-enemy",
		Priority:     500,
		Category:     CategoryMovement,
		ConditionSrc: `HasEnemy() && CanMove()`,
		Action:       ActionAdvance,
	})

	rules = append(rules, &Rule{
		Name:         "hold",
		Priority:     0,
		Category:     CategoryFallback,
		ConditionSrc: `true`,
		Action:       ActionHold,
	})

	return rules
}

// DefaultRules is the rule set compiled from DefaultDoctrine.
func DefaultRules() []*Rule {
	return CompileDoctrine(DefaultDoctrine())
}

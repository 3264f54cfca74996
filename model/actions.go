package model

// Action names understood by the orchestration server.
const (
	ActionHold    = "hold"
	ActionMove    = "move"
	ActionAttack1 = "attack1"
	ActionAttack2 = "attack2"
	ActionSkill1  = "skill1"
	ActionSkill2  = "skill2"
)

// Skill effects.
const (
	EffectHeal  = "heal"
	EffectRange = "range"
)

// Action describes one capability of a unit type. A zero Range or Distance
// means the capability is absent.
type Action struct {
	Range    int    `json:"range,omitempty" yaml:"range,omitempty"`
	Distance int    `json:"distance,omitempty" yaml:"distance,omitempty"`
	Damage   int    `json:"damage,omitempty" yaml:"damage,omitempty"`
	Effect   string `json:"effect,omitempty" yaml:"effect,omitempty"`
	Value    int    `json:"value,omitempty" yaml:"value,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Offensive reports whether the action can be aimed at an enemy.
func (a Action) Offensive() bool {
	return a.Range > 0 && a.Effect != EffectHeal
}

// Power is the amount of damage the action deals when it lands.
func (a Action) Power() int {
	if a.Effect == EffectRange {
		return a.Value
	}
	return a.Damage
}

// ActionTable maps unit type → action name → descriptor.
type ActionTable map[string]map[string]Action

// Unit types in the stock catalogue.
const (
	Warrior = "warrior"
	Healer  = "healer"
	Mage    = "mage"
	Rogue   = "rogue"
)

// DefaultActionTable is the stock four-class catalogue. The agent falls back
// to it when a snapshot arrives without its own table.
func DefaultActionTable() ActionTable {
	return ActionTable{
		Warrior: {
			ActionMove:    {Distance: 3},
			ActionHold:    {},
			ActionAttack1: {Range: 1, Damage: 30},
		},
		Healer: {
			ActionMove:    {Distance: 2},
			ActionHold:    {},
			ActionAttack1: {Range: 1, Damage: 10},
			ActionSkill1:  {Effect: EffectHeal, Range: 5, Value: 30, Name: "heal"},
		},
		Mage: {
			ActionMove:    {Distance: 2},
			ActionHold:    {},
			ActionAttack1: {Range: 1, Damage: 10},
			ActionSkill1:  {Effect: EffectRange, Range: 4, Value: 40, Name: "firebolt"},
		},
		Rogue: {
			ActionMove:    {Distance: 4},
			ActionHold:    {},
			ActionAttack1: {Range: 1, Damage: 25},
		},
	}
}

// Phase identifies which of a unit's two action slots is being decided.
type Phase string

const (
	FirstAction  Phase = "FirstAction"
	SecondAction Phase = "SecondAction"
)

func (p Phase) Valid() bool { return p == FirstAction || p == SecondAction }

// Decision is the one value that crosses back to the orchestration server.
type Decision struct {
	Action string    `json:"action"`
	Target *Position `json:"target,omitempty"`
}

// Hold is the safe no-op decision.
func Hold() Decision { return Decision{Action: ActionHold} }

// Target builds a decision aimed at a cell.
func Target(action string, p Position) Decision {
	return Decision{Action: action, Target: &p}
}

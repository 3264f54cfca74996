package rules

import (
	"math"

	"github.com/samber/lo"
)

// Doctrine is a team-wide posture pushed by the orchestrator.
// Weights are 0.0–1.0; the compiler maps them to concrete rule parameters.
type Doctrine struct {
	Name             string   `json:"name" yaml:"name"`
	Rationale        string   `json:"rationale" yaml:"rationale"`
	SupportPriority  float64  `json:"support_priority" yaml:"support_priority"`
	HealThreshold    float64  `json:"heal_threshold" yaml:"heal_threshold"`
	PreferredActions []string `json:"preferred_actions,omitempty" yaml:"preferred_actions,omitempty"`
}

// DefaultDoctrine returns a balanced baseline doctrine.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:            "Balanced",
		Rationale:       "Default balanced posture",
		SupportPriority: 0.5,
		HealThreshold:   0.5,
	}
}

// Validate clamps all weights to their valid ranges and tidies the
// preferred action list (blank names dropped, duplicates removed).
func (d *Doctrine) Validate() {
	d.SupportPriority = clamp(d.SupportPriority, 0, 1)
	d.HealThreshold = clamp(d.HealThreshold, 0, 1)
	d.PreferredActions = lo.Uniq(lo.Compact(d.PreferredActions))
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

package agent

import (
	"fmt"

	"github.com/nstehr/vimy/tactics-core/model"
)

// EventKind identifies a notable change between two battle snapshots seen by
// the same session.
type EventKind string

const (
	EventUnitLost       EventKind = "unit_lost"
	EventEnemyDown      EventKind = "enemy_down"
	EventArmyDevastated EventKind = "army_devastated"
	EventUnitStalled    EventKind = "unit_stalled"
)

// Event is a significant change detected by diffing consecutive snapshots.
// Events are logged so an operator can see why a team's behaviour shifted.
type Event struct {
	Kind   EventKind
	Turn   int
	UnitID int
	Detail string
}

// battleSnapshot captures the diffable fields of one snapshot from a team's
// point of view.
type battleSnapshot struct {
	turn    int
	own     map[int]string // live unit id → type
	enemies map[int]string
}

func takeSnapshot(snap *model.Snapshot, team int) battleSnapshot {
	bs := battleSnapshot{
		own:     make(map[int]string),
		enemies: make(map[int]string),
	}
	if snap == nil {
		return bs
	}
	bs.turn = snap.Turn
	for _, u := range snap.Units {
		if !u.IsAlive() {
			continue
		}
		if u.Team == team {
			bs.own[u.ID] = u.Type
		} else {
			bs.enemies[u.ID] = u.Type
		}
	}
	return bs
}

// detectEvents compares the current snapshot against the previous one and
// returns any triggered events. Returns nil if prev is nil (first snapshot).
func detectEvents(snap *model.Snapshot, team int, prev *battleSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(snap, team)

	lost := 0
	for id, typ := range prev.own {
		if _, alive := cur.own[id]; !alive {
			lost++
			events = append(events, Event{
				Kind:   EventUnitLost,
				Turn:   cur.turn,
				UnitID: id,
				Detail: fmt.Sprintf("lost %s (id %d)", typ, id),
			})
		}
	}

	for id, typ := range prev.enemies {
		if _, alive := cur.enemies[id]; !alive {
			events = append(events, Event{
				Kind:   EventEnemyDown,
				Turn:   cur.turn,
				UnitID: id,
				Detail: fmt.Sprintf("enemy %s (id %d) is down", typ, id),
			})
		}
	}

	// More than half the squad gone since the last look (floor of 2 to avoid noise).
	if len(prev.own) >= 2 && lost > 0 && float64(lost)/float64(len(prev.own)) > 0.5 {
		events = append(events, Event{
			Kind:   EventArmyDevastated,
			Turn:   cur.turn,
			Detail: fmt.Sprintf("army devastated: %d→%d units", len(prev.own), len(cur.own)),
		})
	}

	return events
}

// holdTracker counts consecutive hold decisions per unit.
type holdTracker struct {
	threshold int
	streaks   map[int]int
}

func newHoldTracker(threshold int) *holdTracker {
	return &holdTracker{threshold: threshold, streaks: make(map[int]int)}
}

// observe records one decision and returns a stall event the moment a unit's
// hold streak reaches the threshold. A non-hold decision resets the streak.
func (h *holdTracker) observe(turn, unitID int, d model.Decision) (Event, bool) {
	if d.Action != model.ActionHold {
		delete(h.streaks, unitID)
		return Event{}, false
	}
	h.streaks[unitID]++
	if h.threshold <= 0 || h.streaks[unitID] != h.threshold {
		return Event{}, false
	}
	return Event{
		Kind:   EventUnitStalled,
		Turn:   turn,
		UnitID: unitID,
		Detail: fmt.Sprintf("unit %d held for %d phases in a row", unitID, h.threshold),
	}, true
}

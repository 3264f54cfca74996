package agent

import (
	"testing"

	"github.com/nstehr/vimy/tactics-core/model"
)

// baseSnapshot returns a small two-team battle for testing.
func baseSnapshot(turn int) *model.Snapshot {
	return &model.Snapshot{
		Turn:   turn,
		Width:  10,
		Height: 10,
		Units: []model.Unit{
			{ID: 1, Team: 1, Type: model.Warrior, HP: 100, MaxHP: 100},
			{ID: 2, Team: 1, Type: model.Healer, HP: 80, MaxHP: 80},
			{ID: 3, Team: 1, Type: model.Mage, HP: 60, MaxHP: 60},
			{ID: 4, Team: 2, Type: model.Rogue, HP: 70, MaxHP: 70},
			{ID: 5, Team: 2, Type: model.Warrior, HP: 100, MaxHP: 100},
		},
	}
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestDetectEvents_NoEvents(t *testing.T) {
	snap := baseSnapshot(1)
	prev := takeSnapshot(snap, 1)

	snap.Turn = 2
	events := detectEvents(snap, 1, &prev)
	if len(events) != 0 {
		t.Errorf("expected 0 events, got %d: %+v", len(events), events)
	}
}

func TestDetectEvents_NilPrev(t *testing.T) {
	events := detectEvents(baseSnapshot(1), 1, nil)
	if events != nil {
		t.Errorf("expected nil events for nil prev, got %+v", events)
	}
}

func TestDetectEvents_UnitLost(t *testing.T) {
	snap := baseSnapshot(1)
	prev := takeSnapshot(snap, 1)

	snap = baseSnapshot(2)
	snap.Units[1].HP = 0
	events := detectEvents(snap, 1, &prev)
	if countKind(events, EventUnitLost) != 1 {
		t.Fatalf("expected 1 unit_lost event, got %+v", events)
	}
	if events[0].UnitID != 2 || events[0].Turn != 2 {
		t.Errorf("unit_lost = %+v, want unit 2 on turn 2", events[0])
	}
	if countKind(events, EventArmyDevastated) != 0 {
		t.Errorf("one loss out of three should not be devastating: %+v", events)
	}
}

func TestDetectEvents_EnemyDown(t *testing.T) {
	snap := baseSnapshot(1)
	prev := takeSnapshot(snap, 1)

	snap = baseSnapshot(2)
	snap.Units = snap.Units[:4] // enemy 5 removed from the board entirely
	events := detectEvents(snap, 1, &prev)
	if countKind(events, EventEnemyDown) != 1 {
		t.Errorf("expected 1 enemy_down event, got %+v", events)
	}
}

func TestDetectEvents_ArmyDevastated(t *testing.T) {
	snap := baseSnapshot(1)
	prev := takeSnapshot(snap, 1)

	snap = baseSnapshot(2)
	snap.Units[0].HP = 0
	snap.Units[2].HP = -5
	events := detectEvents(snap, 1, &prev)
	if countKind(events, EventUnitLost) != 2 {
		t.Errorf("expected 2 unit_lost events, got %+v", events)
	}
	if countKind(events, EventArmyDevastated) != 1 {
		t.Errorf("expected army_devastated, got %+v", events)
	}
}

func TestDetectEvents_PerspectiveFollowsTeam(t *testing.T) {
	snap := baseSnapshot(1)
	prev := takeSnapshot(snap, 2)

	snap = baseSnapshot(2)
	snap.Units[0].HP = 0
	events := detectEvents(snap, 2, &prev)
	if countKind(events, EventEnemyDown) != 1 || countKind(events, EventUnitLost) != 0 {
		t.Errorf("team 2 should see unit 1 as an enemy down, got %+v", events)
	}
}

func TestHoldTracker(t *testing.T) {
	h := newHoldTracker(3)
	hold := model.Hold()

	for i := 1; i <= 2; i++ {
		if _, stalled := h.observe(i, 7, hold); stalled {
			t.Fatalf("stalled after %d holds, threshold is 3", i)
		}
	}
	ev, stalled := h.observe(3, 7, hold)
	if !stalled || ev.Kind != EventUnitStalled || ev.UnitID != 7 {
		t.Fatalf("observe() = %+v, %v, want a stall for unit 7", ev, stalled)
	}
	// Fires once per streak, not on every further hold.
	if _, stalled := h.observe(4, 7, hold); stalled {
		t.Error("stall reported twice for the same streak")
	}

	h.observe(5, 7, model.Target(model.ActionMove, model.Position{X: 1, Y: 1}))
	if h.streaks[7] != 0 {
		t.Errorf("streak = %d after a move, want 0", h.streaks[7])
	}
}

func TestHoldTrackerDisabled(t *testing.T) {
	h := newHoldTracker(0)
	for i := range 10 {
		if _, stalled := h.observe(i, 1, model.Hold()); stalled {
			t.Fatal("a zero threshold should never report stalls")
		}
	}
}

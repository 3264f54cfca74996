package model

import (
	"encoding/json"
	"math"
	"testing"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Width:  50,
		Height: 50,
		Units: []Unit{
			{ID: 1, Team: 1, Type: Warrior, HP: 100, MaxHP: 100, Position: Position{X: 10, Y: 10}},
			{ID: 2, Team: 1, Type: Healer, HP: 50, MaxHP: 100, Position: Position{X: 15, Y: 15}},
			{ID: 3, Team: 2, Type: Mage, HP: 80, MaxHP: 120, Position: Position{X: 20, Y: 20}},
			{ID: 4, Team: 2, Type: Rogue, HP: 0, MaxHP: 130, Position: Position{X: 25, Y: 25}}, // dead
			{ID: 5, Team: 1, Type: Rogue, HP: 0, MaxHP: 130, Position: Position{X: 5, Y: 5}},   // dead ally
		},
		UnitActionMap: DefaultActionTable(),
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want float64
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 5},
		{Position{10, 10}, Position{11, 11}, math.Sqrt2},
		{Position{5, 2}, Position{2, 5}, math.Sqrt(18)},
	}
	for _, tc := range tests {
		if got := Distance(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Distance(%v, %v) = %f, want %f", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{X: 3, Y: -1}).String(); got != "3,-1" {
		t.Errorf("String() = %q, want %q", got, "3,-1")
	}
}

func TestSnapshotUnit(t *testing.T) {
	s := testSnapshot()
	u, ok := s.Unit(3)
	if !ok || u.Type != Mage {
		t.Errorf("Unit(3) = %+v, %v; want mage", u, ok)
	}
	if _, ok := s.Unit(99); ok {
		t.Error("Unit(99) should not be found")
	}
	var nilSnap *Snapshot
	if _, ok := nilSnap.Unit(1); ok {
		t.Error("nil snapshot should find nothing")
	}
}

func TestSnapshotTeams(t *testing.T) {
	s := testSnapshot()

	friends := s.Friendly(1)
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Errorf("Friendly(1) = %v, want only unit 2", friends)
	}

	enemies := s.Enemies(1)
	if len(enemies) != 1 || enemies[0].ID != 3 {
		t.Errorf("Enemies(1) = %v, want only unit 3 (4 is dead)", enemies)
	}

	if got := s.Enemies(42); got != nil {
		t.Errorf("Enemies(42) = %v, want nil for unknown unit", got)
	}
}

func TestSnapshotActions(t *testing.T) {
	s := testSnapshot()
	if got := s.MoveDistance(Rogue); got != 4 {
		t.Errorf("MoveDistance(rogue) = %d, want 4", got)
	}
	if got := s.MoveDistance("turret"); got != 0 {
		t.Errorf("MoveDistance(turret) = %d, want 0", got)
	}
	skill, ok := s.Action(Mage, ActionSkill1)
	if !ok || skill.Range != 4 || !skill.Offensive() || skill.Power() != 40 {
		t.Errorf("Action(mage, skill1) = %+v, %v", skill, ok)
	}
	heal, _ := s.Action(Healer, ActionSkill1)
	if heal.Offensive() {
		t.Error("heal skill should not be offensive")
	}

	var nilSnap *Snapshot
	if nilSnap.Actions(Warrior) != nil {
		t.Error("nil snapshot should have no actions")
	}
}

func TestSnapshotOccupancy(t *testing.T) {
	s := testSnapshot()
	if !s.IsOccupied(Position{X: 20, Y: 20}) {
		t.Error("(20,20) holds a live mage")
	}
	if s.IsOccupied(Position{X: 25, Y: 25}) {
		t.Error("dead units must not occupy cells")
	}
	occ := s.Occupancy()
	if len(occ) != 3 {
		t.Errorf("Occupancy() has %d cells, want 3", len(occ))
	}
}

func TestSnapshotWalkable(t *testing.T) {
	s := &Snapshot{
		Width: 2, Height: 2,
		Terrain: &TerrainGrid{Cols: 2, Rows: 2, Cells: []TerrainType{Land, Cliff, Water, Bridge}},
	}
	tests := []struct {
		p    Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{1, 0}, false},
		{Position{0, 1}, false},
		{Position{1, 1}, true},
		{Position{2, 0}, false},
		{Position{-1, 0}, false},
	}
	for _, tc := range tests {
		if got := s.Walkable(tc.p); got != tc.want {
			t.Errorf("Walkable(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestNextTurnInputWireFormat(t *testing.T) {
	raw := `{
		"state": {
			"turn": 3, "width": 20, "height": 20,
			"units": [{"id": 7, "team": 1, "type": "mage", "hp": 10, "maxHp": 120, "position": {"x": 2, "y": 1}}],
			"unit_action_map": {"mage": {"move": {"distance": 2}, "skill1": {"effect": "range", "range": 4, "value": 40}}}
		},
		"current_unit_id": 7,
		"action_index": "SecondAction"
	}`
	var in NextTurnInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.CurrentUnitID != 7 || in.ActionIndex != SecondAction || !in.ActionIndex.Valid() {
		t.Errorf("unexpected header fields: %+v", in)
	}
	if got := in.State.MoveDistance(Mage); got != 2 {
		t.Errorf("MoveDistance(mage) = %d, want 2", got)
	}

	out, err := json.Marshal(Hold())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"action":"hold"}` {
		t.Errorf("Hold() = %s, want {\"action\":\"hold\"}", out)
	}
	out, _ = json.Marshal(Target(ActionMove, Position{X: 4, Y: 5}))
	if string(out) != `{"action":"move","target":{"x":4,"y":5}}` {
		t.Errorf("Target() = %s", out)
	}
}

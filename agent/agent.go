package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nstehr/vimy/tactics-core/ipc"
	"github.com/nstehr/vimy/tactics-core/model"
	"github.com/nstehr/vimy/tactics-core/rules"
)

// Agent owns the decision-making for a single team session.
type Agent struct {
	Conn   *ipc.Connection
	Team   int
	Name   string
	Engine *rules.Engine

	// Catalogue fills in snapshots that arrive without an action table.
	Catalogue model.ActionTable

	mu    sync.Mutex
	prev  map[int]*battleSnapshot // last look per team
	holds *holdTracker
}

// New creates an agent. conn may be nil when decisions are served over HTTP.
func New(conn *ipc.Connection, engine *rules.Engine, catalogue model.ActionTable, stallThreshold int) *Agent {
	if catalogue == nil {
		catalogue = model.DefaultActionTable()
	}
	return &Agent{
		Conn:      conn,
		Engine:    engine,
		Catalogue: catalogue,
		prev:      make(map[int]*battleSnapshot),
		holds:     newHoldTracker(stallThreshold),
	}
}

// HandleHello completes the handshake so the server knows the sidecar is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.mu.Lock()
	a.Team = hello.Team
	a.Name = hello.Name
	a.mu.Unlock()
	if a.Conn != nil {
		a.Conn.Team = hello.Team
	}
	slog.Info("team identified", "team", hello.Team, "name", hello.Name)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleDecide answers one decide request with a decision envelope.
func (a *Agent) HandleDecide(env ipc.Envelope) (*ipc.Envelope, error) {
	var in model.NextTurnInput
	if err := json.Unmarshal(env.Data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal decide: %w", err)
	}

	d := a.Decide(in)
	reply, err := ipc.NewEnvelope(ipc.TypeDecision, ipc.DecisionMessage{
		UnitID:   in.CurrentUnitID,
		Phase:    in.ActionIndex,
		Decision: d,
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// HandleDoctrine installs a new doctrine on the engine.
func (a *Agent) HandleDoctrine(env ipc.Envelope) (*ipc.Envelope, error) {
	var d rules.Doctrine
	if err := json.Unmarshal(env.Data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal doctrine: %w", err)
	}
	if err := a.Engine.ApplyDoctrine(d); err != nil {
		return nil, err
	}
	slog.Info("doctrine applied",
		"name", d.Name,
		"support_priority", d.SupportPriority,
		"heal_threshold", d.HealThreshold,
		"preferred", d.PreferredActions,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// Decide runs the engine for one unit and phase. It never fails; anything
// unexpected degrades to hold.
func (a *Agent) Decide(in model.NextTurnInput) (d model.Decision) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("decide panicked, holding", "unit", in.CurrentUnitID, "panic", r)
			d = model.Hold()
		}
	}()

	if !in.ActionIndex.Valid() {
		slog.Warn("unknown action index", "unit", in.CurrentUnitID, "action_index", in.ActionIndex)
	}

	snap := in.State
	if len(snap.UnitActionMap) == 0 {
		snap.UnitActionMap = a.Catalogue
	}

	d = a.Engine.Decide(&snap, in.CurrentUnitID, in.ActionIndex)
	a.observe(&snap, in.CurrentUnitID, d)

	slog.Info("decision",
		"turn", snap.Turn,
		"unit", in.CurrentUnitID,
		"phase", in.ActionIndex,
		"action", d.Action,
		"target", d.Target,
	)
	return d
}

// observe diffs the snapshot against the acting team's previous look and
// updates hold streaks. Stall events are pushed to the session, if any.
func (a *Agent) observe(snap *model.Snapshot, unitID int, d model.Decision) []Event {
	a.mu.Lock()
	team := a.Team
	if u, ok := snap.Unit(unitID); ok {
		team = u.Team
	}
	if a.prev == nil {
		a.prev = make(map[int]*battleSnapshot)
	}
	events := detectEvents(snap, team, a.prev[team])
	cur := takeSnapshot(snap, team)
	a.prev[team] = &cur

	var stall *Event
	if a.holds != nil {
		if ev, stalled := a.holds.observe(snap.Turn, unitID, d); stalled {
			events = append(events, ev)
			stall = &ev
		}
	}
	a.mu.Unlock()

	for _, ev := range events {
		if ev.Kind == EventUnitStalled {
			slog.Warn("unit stalled", "team", team, "turn", ev.Turn, "unit", ev.UnitID, "detail", ev.Detail)
			continue
		}
		slog.Info("battle event", "team", team, "kind", ev.Kind, "turn", ev.Turn, "unit", ev.UnitID, "detail", ev.Detail)
	}

	if stall != nil && a.Conn != nil {
		err := a.Conn.Send(ipc.TypeStall, ipc.StallMessage{
			UnitID: stall.UnitID,
			Turn:   stall.Turn,
			Holds:  a.holds.threshold,
		})
		if err != nil {
			slog.Error("failed to send stall notice", "unit", stall.UnitID, "error", err)
		}
	}
	return events
}

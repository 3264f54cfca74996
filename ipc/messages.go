package ipc

import "github.com/nstehr/vimy/tactics-core/model"

// Message types exchanged with the orchestration server.
const (
	TypeHello    = "hello"
	TypeAck      = "ack"
	TypeDecide   = "decide"   // data: model.NextTurnInput
	TypeDecision = "decision" // data: DecisionMessage
	TypeDoctrine = "doctrine" // data: rules.Doctrine
	TypeStall    = "stall"    // data: StallMessage, unsolicited
)

// HelloMessage identifies the team a session decides for.
type HelloMessage struct {
	Team int    `json:"team"`
	Name string `json:"name,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// DecisionMessage answers a decide request. The unit and phase are echoed so
// the server can match replies on a pipelined connection.
type DecisionMessage struct {
	UnitID int         `json:"unit_id"`
	Phase  model.Phase `json:"action_index"`
	model.Decision
}

// StallMessage tells the server a unit has held for Holds phases in a row.
type StallMessage struct {
	UnitID int `json:"unit_id"`
	Turn   int `json:"turn"`
	Holds  int `json:"holds"`
}

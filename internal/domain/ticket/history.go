package ticket

import "time"

// History actions.
const (
	ActionCreated         = "created"
	ActionUpdated         = "updated"
	ActionMechanicsEdited = "mechanics_edited"
	ActionPartAdded       = "part_added"
	ActionDeleted         = "deleted"
)

// HistoryEntry is an audit record of one ticket mutation.
type HistoryEntry struct {
	ID       uint
	TicketID uint
	Action   string
	// ActorID is the employee that made the change, zero for system actions.
	ActorID   uint
	Changes   map[string]any
	CreatedAt time.Time
}

func NewHistoryEntry(ticketID uint, action string, actorID uint, changes map[string]any) *HistoryEntry {
	if changes == nil {
		changes = map[string]any{}
	}
	return &HistoryEntry{
		TicketID:  ticketID,
		Action:    action,
		ActorID:   actorID,
		Changes:   changes,
		CreatedAt: time.Now(),
	}
}

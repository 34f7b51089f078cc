package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of mutation an entry describes.
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionRoleChange Action = "role_change"
)

// Entry is one immutable audit record. Before is nil on create, After is nil
// on delete. CreatedAt is assigned by the database.
type Entry struct {
	ID        uuid.UUID   `json:"id"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entity_id"`
	Action    Action      `json:"action"`
	ByUser    uuid.UUID   `json:"by_user"`
	Before    interface{} `json:"before"`
	After     interface{} `json:"after"`
	CreatedAt time.Time   `json:"created_at"`
}

// ListFilter narrows ListRecent. Empty fields match everything.
type ListFilter struct {
	Entity   string
	EntityID string
	Limit    int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Normalize clamps Limit into [1, MaxListLimit].
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}

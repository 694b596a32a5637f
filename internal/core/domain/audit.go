package domain

import "time"

// AuditAction identifies the state transition an audit event records.
type AuditAction string

const (
	AuditCreated   AuditAction = "CREATED"
	AuditUpdated   AuditAction = "UPDATED"
	AuditApproved  AuditAction = "APPROVED"
	AuditRejected  AuditAction = "REJECTED"
	AuditCancelled AuditAction = "CANCELLED"
	AuditDeleted   AuditAction = "DELETED"
)

// AuditEvent is emitted once per successful state transition. Delivery is
// fire-and-forget: a failed write is logged and never rolls back the transition
// that produced it.
type AuditEvent struct {
	EventID    string      `json:"eventID"` // Primary key (UUID)
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityID"`
	Action     AuditAction `json:"action"`
	ActorID    string      `json:"actorID"`
	Summary    string      `json:"summary"`
	OccurredAt time.Time   `json:"occurredAt"`
}

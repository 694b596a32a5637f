package repositories

import (
	"context"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
)

// AuditRepository persists audit events emitted on successful state transitions.
type AuditRepository interface {
	// SaveEvent inserts an audit event.
	SaveEvent(ctx context.Context, event domain.AuditEvent) error
}

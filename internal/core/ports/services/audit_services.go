package services

import (
	"context"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
)

// AuditSvcFacade records audit events for successful state transitions.
// Recording is fire-and-forget: implementations must never fail the caller.
type AuditSvcFacade interface {
	Record(ctx context.Context, entityType string, entityID string, action domain.AuditAction, actorID string, summary string)
}

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
	portssvc "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/middleware"
)

const auditWriteTimeout = 5 * time.Second

// auditService records audit events for successful state transitions.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record writes the audit event asynchronously. The write is detached from the
// caller's context so a finished request cannot cancel it, and a failed write is
// logged but never surfaces to the caller: the state transition already happened.
func (s *auditService) Record(ctx context.Context, entityType string, entityID string, action domain.AuditAction, actorID string, summary string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	event := domain.AuditEvent{
		EventID:    uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Summary:    summary,
		OccurredAt: time.Now().UTC(),
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if err := s.auditRepo.SaveEvent(writeCtx, event); err != nil {
			logger.Error("Failed to record audit event",
				slog.String("entity_type", entityType),
				slog.String("entity_id", entityID),
				slog.String("action", string(action)),
				slog.String("error", err.Error()),
			)
		}
	}()
}

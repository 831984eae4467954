package service

import (
	"context"
	"fmt"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/repo"
	"go.uber.org/zap"
)

// AuditService turns lifecycle events into the persistent audit trail.
type AuditService struct {
	audits repo.StatusAuditRepository
	logger *zap.SugaredLogger
}

func NewAuditService(audits repo.StatusAuditRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{
		audits: audits,
		logger: logger,
	}
}

func (s *AuditService) RecordStatusEvent(ctx context.Context, event domain.StatusEvent) error {
	audit := &domain.StatusAudit{
		Entity:    event.Entity,
		EntityID:  event.EntityID,
		EventType: event.EventType,
		OldStatus: event.OldStatus,
		NewStatus: event.NewStatus,
		Reason:    event.Reason,
		UserID:    event.UserID,
		Timestamp: event.Timestamp,
	}

	if err := s.audits.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create audit record", "entity_id", event.EntityID, "error", err)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	s.logger.Infow("status audit recorded", "entity_id", event.EntityID, "event_type", event.EventType)

	return nil
}

func (s *AuditService) ListByEntity(ctx context.Context, entityID string, limit int) ([]domain.StatusAudit, error) {
	audits, err := s.audits.ListByEntity(ctx, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}

	return audits, nil
}

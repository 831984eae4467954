package repo

import (
	"context"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
)

type StatusAuditRepository interface {
	Create(ctx context.Context, audit *domain.StatusAudit) error
	ListByEntity(ctx context.Context, entityID string, limit int) ([]domain.StatusAudit, error)
}

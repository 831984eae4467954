package service

import (
	"context"
	"testing"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordStatusEvent(t *testing.T) {
	repo := newFakeAuditRepo()
	svc := NewAuditService(repo, zap.NewNop().Sugar())
	ctx := context.Background()

	event := domain.StatusEvent{
		EventType: domain.EventCustomerStatusChanged,
		Entity:    domain.EntityCustomer,
		EntityID:  "abc123",
		OldStatus: "active",
		NewStatus: "inactive",
		Reason:    "deactivation",
		Timestamp: time.Now(),
	}

	require.NoError(t, svc.RecordStatusEvent(ctx, event))

	audits, err := svc.ListByEntity(ctx, "abc123", 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, "inactive", audits[0].NewStatus)
	assert.Equal(t, domain.EntityCustomer, audits[0].Entity)
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/queue"
	"github.com/SilasJCSP/delivery-tech-fat/internal/service"
	"go.uber.org/zap"
)

// StatusAuditWorker consumes lifecycle status events off the broker and
// writes the audit trail through the audit service.
type StatusAuditWorker struct {
	auditService *service.AuditService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewStatusAuditWorker(
	auditService *service.AuditService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *StatusAuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &StatusAuditWorker{
		auditService: auditService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *StatusAuditWorker) Start() error {
	w.logger.Info("starting status audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueStatusEvents, w.handleMessage)
}

func (w *StatusAuditWorker) Stop() {
	w.logger.Info("stopping status audit worker")
	w.cancel()
}

func (w *StatusAuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.StatusEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal status event", "error", err)
		return fmt.Errorf("failed to unmarshal status event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing status event", "entity_id", event.EntityID, "event_type", event.EventType)

	if err := w.auditService.RecordStatusEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process status event", "entity_id", event.EntityID, "error", err)
		return err
	}

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/queue"
	"github.com/SilasJCSP/delivery-tech-fat/internal/repo"
	"github.com/SilasJCSP/delivery-tech-fat/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CustomerInput carries the writable customer fields. The service owns the
// identifier and the active flag; neither is accepted from callers.
type CustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type CustomerService struct {
	customers repo.CustomerRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewCustomerService(
	customers repo.CustomerRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		broker:    broker,
		logger:    logger,
	}
}

// normalizeEmail lowercases so that uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *CustomerService) Register(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:    strings.TrimSpace(input.Name),
		Phone:   input.Phone,
		Email:   normalizeEmail(input.Email),
		Address: strings.TrimSpace(input.Address),
	}

	if err := validate.Customer(customer); err != nil {
		return nil, err
	}

	exists, err := s.customers.ExistsByEmail(ctx, customer.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.NewValidationError("email", "Email já cadastrado")
	}

	customer.Active = true

	// the unique index backs this up: if a concurrent registration slips
	// between the check and the insert, Create returns the same error
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Infow("customer registered", "customer_id", customer.ID.Hex(), "email", customer.Email)

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType: domain.EventCustomerRegistered,
		Entity:    domain.EntityCustomer,
		EntityID:  customer.ID.Hex(),
		NewStatus: "active",
		Timestamp: time.Now(),
	})

	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.customers.GetByEmail(ctx, normalizeEmail(email))
}

func (s *CustomerService) ListActive(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.ListActive(ctx)
}

func (s *CustomerService) SearchByName(ctx context.Context, fragment string) ([]domain.Customer, error) {
	return s.customers.SearchByName(ctx, fragment)
}

func (s *CustomerService) Update(ctx context.Context, id primitive.ObjectID, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &domain.Customer{
		Name:    strings.TrimSpace(input.Name),
		Phone:   input.Phone,
		Email:   normalizeEmail(input.Email),
		Address: strings.TrimSpace(input.Address),
	}

	if err := validate.Customer(updated); err != nil {
		return nil, err
	}

	// only re-check uniqueness when the email actually changes, so a
	// customer never collides with itself
	if updated.Email != customer.Email {
		exists, err := s.customers.ExistsByEmail(ctx, updated.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, domain.NewValidationError("email", "Email já cadastrado")
		}
	}

	customer.Name = updated.Name
	customer.Phone = updated.Phone
	customer.Email = updated.Email
	customer.Address = updated.Address

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Infow("customer updated", "customer_id", customer.ID.Hex())

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType: domain.EventCustomerUpdated,
		Entity:    domain.EntityCustomer,
		EntityID:  customer.ID.Hex(),
		Timestamp: time.Now(),
	})

	return customer, nil
}

// Deactivate is deliberately not idempotent: deactivating an already
// inactive customer is a business error, not a no-op.
func (s *CustomerService) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !customer.Active {
		return domain.NewValidationError("active", "Cliente já está inativo")
	}

	customer.Active = false

	if err := s.customers.Update(ctx, customer); err != nil {
		return err
	}

	s.logger.Infow("customer deactivated", "customer_id", customer.ID.Hex())

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType: domain.EventCustomerStatusChanged,
		Entity:    domain.EntityCustomer,
		EntityID:  customer.ID.Hex(),
		OldStatus: "active",
		NewStatus: "inactive",
		Reason:    "deactivation",
		Timestamp: time.Now(),
	})

	return nil
}

// ToggleActive flips the active flag unconditionally. Unlike Deactivate it
// never fails for an existing customer.
func (s *CustomerService) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := statusLabel(customer.Active)
	customer.Active = !customer.Active

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Infow("customer status toggled", "customer_id", customer.ID.Hex(), "active", customer.Active)

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType: domain.EventCustomerStatusChanged,
		Entity:    domain.EntityCustomer,
		EntityID:  customer.ID.Hex(),
		OldStatus: oldStatus,
		NewStatus: statusLabel(customer.Active),
		Reason:    "toggle",
		Timestamp: time.Now(),
	})

	return customer, nil
}

func statusLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// publishStatusEvent is best-effort: the write already happened, a broker
// hiccup must not fail the request.
func (s *CustomerService) publishStatusEvent(ctx context.Context, event domain.StatusEvent) {
	if s.broker == nil {
		return
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal status event", "entity_id", event.EntityID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueStatusEvents, eventBytes); err != nil {
		s.logger.Errorw("failed to publish status event", "entity_id", event.EntityID, "error", err)
	}
}

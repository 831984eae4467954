package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/queue"
	"github.com/SilasJCSP/delivery-tech-fat/internal/repo"
	"github.com/SilasJCSP/delivery-tech-fat/internal/validate"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductInput struct {
	RestaurantID primitive.ObjectID
	Name         string
	Category     string
	Description  string
	Price        decimal.Decimal
}

// CatalogService owns the product lifecycle. The owning restaurant is
// always resolved by identifier before a product is written.
type CatalogService struct {
	products    repo.ProductRepository
	restaurants repo.RestaurantRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewCatalogService(
	products repo.ProductRepository,
	restaurants repo.RestaurantRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		products:    products,
		restaurants: restaurants,
		broker:      broker,
		logger:      logger,
	}
}

func (s *CatalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	// resolving the restaurant first guarantees nothing is persisted when
	// the reference is dangling
	if _, err := s.restaurants.GetByID(ctx, input.RestaurantID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		RestaurantID: input.RestaurantID,
		Name:         strings.TrimSpace(input.Name),
		Category:     input.Category,
		Description:  input.Description,
		Price:        input.Price,
	}

	if err := validate.Product(product); err != nil {
		return nil, err
	}

	product.Available = true

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Infow("product created", "product_id", product.ID.Hex(), "restaurant_id", product.RestaurantID.Hex())

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType: domain.EventProductCreated,
		Entity:    domain.EntityProduct,
		EntityID:  product.ID.Hex(),
		NewStatus: "available",
		Timestamp: time.Now(),
	})

	return product, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *CatalogService) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Product, error) {
	return s.products.ListByRestaurant(ctx, restaurantID)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.ListByCategory(ctx, category)
}

func (s *CatalogService) SearchByName(ctx context.Context, fragment string) ([]domain.Product, error) {
	return s.products.SearchByName(ctx, fragment)
}

func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Category = input.Category
	product.Description = input.Description
	product.Price = input.Price

	if err := validate.Product(product); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Infow("product updated", "product_id", product.ID.Hex())

	return product, nil
}

// SetAvailability is idempotent: setting the flag to its current value is
// a successful no-op.
func (s *CatalogService) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.SetAvailability(ctx, id, available); err != nil {
		return err
	}

	if product.Available != available {
		s.logger.Infow("product availability changed", "product_id", id.Hex(), "available", available)

		s.publishStatusEvent(ctx, domain.StatusEvent{
			EventType: domain.EventProductStatusChanged,
			Entity:    domain.EntityProduct,
			EntityID:  id.Hex(),
			OldStatus: availabilityLabel(product.Available),
			NewStatus: availabilityLabel(available),
			Timestamp: time.Now(),
		})
	}

	return nil
}

// Delete hard-removes the product. SoftDeactivate is the alternative that
// keeps the record for existing orders.
func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("product deleted", "product_id", id.Hex())

	s.publishStatusEvent(ctx, domain.StatusEvent{
		EventType: domain.EventProductDeleted,
		Entity:    domain.EntityProduct,
		EntityID:  id.Hex(),
		NewStatus: "deleted",
		Timestamp: time.Now(),
	})

	return nil
}

func (s *CatalogService) SoftDeactivate(ctx context.Context, id primitive.ObjectID) error {
	return s.SetAvailability(ctx, id, false)
}

func availabilityLabel(available bool) string {
	if available {
		return "available"
	}
	return "not_available"
}

func (s *CatalogService) publishStatusEvent(ctx context.Context, event domain.StatusEvent) {
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

package service

import (
	"context"
	"strings"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/repo"
	"github.com/SilasJCSP/delivery-tech-fat/internal/validate"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RestaurantInput struct {
	Name        string
	Category    string
	Address     string
	Phone       string
	DeliveryFee decimal.Decimal
}

type RestaurantService struct {
	restaurants repo.RestaurantRepository
	logger      *zap.SugaredLogger
}

func NewRestaurantService(restaurants repo.RestaurantRepository, logger *zap.SugaredLogger) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, logger: logger}
}

func (s *RestaurantService) Create(ctx context.Context, input RestaurantInput) (*domain.Restaurant, error) {
	restaurant := &domain.Restaurant{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Address:     input.Address,
		Phone:       input.Phone,
		DeliveryFee: input.DeliveryFee,
	}

	if err := validate.Restaurant(restaurant); err != nil {
		return nil, err
	}

	restaurant.Active = true

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	s.logger.Infow("restaurant created", "restaurant_id", restaurant.ID.Hex(), "name", restaurant.Name)

	return restaurant, nil
}

func (s *RestaurantService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	return s.restaurants.GetByID(ctx, id)
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.List(ctx)
}

func (s *RestaurantService) Update(ctx context.Context, id primitive.ObjectID, input RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant.Name = strings.TrimSpace(input.Name)
	restaurant.Category = input.Category
	restaurant.Address = input.Address
	restaurant.Phone = input.Phone
	restaurant.DeliveryFee = input.DeliveryFee

	if err := validate.Restaurant(restaurant); err != nil {
		return nil, err
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	s.logger.Infow("restaurant updated", "restaurant_id", restaurant.ID.Hex())

	return restaurant, nil
}

// ToggleActive flips the open flag. An inactive restaurant keeps its
// products but stops accepting new orders.
func (s *RestaurantService) ToggleActive(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant.Active = !restaurant.Active

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	s.logger.Infow("restaurant status toggled", "restaurant_id", restaurant.ID.Hex(), "active", restaurant.Active)

	return restaurant, nil
}

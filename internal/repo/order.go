package repo

import (
	"context"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
}

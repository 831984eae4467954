package repo

import (
	"context"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	SearchByName(ctx context.Context, fragment string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

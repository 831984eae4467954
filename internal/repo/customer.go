package repo

import (
	"context"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]domain.Customer, error)
	SearchByName(ctx context.Context, fragment string) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

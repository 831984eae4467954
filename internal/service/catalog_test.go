package service

import (
	"context"
	"testing"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func seedRestaurant(t *testing.T, repo *fakeRestaurantRepo) *domain.Restaurant {
	t.Helper()
	restaurant := &domain.Restaurant{
		Name:        "Pizzaria Bella",
		Category:    "pizza",
		Address:     "Av. Paulista, 1000",
		Phone:       "1133334444",
		DeliveryFee: decimal.RequireFromString("7.90"),
		Active:      true,
	}
	require.NoError(t, repo.Create(context.Background(), restaurant))
	return restaurant
}

func TestCreateProductRequiresExistingRestaurant(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewCatalogService(products, newFakeRestaurantRepo(), newFakeBroker(), zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), ProductInput{
		RestaurantID: primitive.NewObjectID(),
		Name:         "Pizza Margherita",
		Price:        decimal.RequireFromString("45.00"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	// nothing may be persisted when the restaurant reference dangles
	assert.Zero(t, products.count())
}

func TestCreateProductDefaultsToAvailable(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurant := seedRestaurant(t, restaurants)
	svc := NewCatalogService(newFakeProductRepo(), restaurants, newFakeBroker(), zap.NewNop().Sugar())

	product, err := svc.Create(context.Background(), ProductInput{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Margherita",
		Category:     "pizza",
		Price:        decimal.RequireFromString("45.00"),
	})

	require.NoError(t, err)
	assert.True(t, product.Available)
	assert.False(t, product.ID.IsZero())
	assert.Equal(t, restaurant.ID, product.RestaurantID)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurant := seedRestaurant(t, restaurants)
	svc := NewCatalogService(newFakeProductRepo(), restaurants, newFakeBroker(), zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), ProductInput{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Margherita",
		Price:        decimal.RequireFromString("-1.00"),
	})

	assert.True(t, domain.IsValidation(err))
}

func TestSetAvailabilityIsIdempotent(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurant := seedRestaurant(t, restaurants)
	broker := newFakeBroker()
	svc := NewCatalogService(newFakeProductRepo(), restaurants, broker, zap.NewNop().Sugar())
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Margherita",
		Price:        decimal.RequireFromString("45.00"),
	})
	require.NoError(t, err)

	published := broker.publishedCount()

	// same value: effective no-op, no error, no event
	require.NoError(t, svc.SetAvailability(ctx, product.ID, true))
	assert.Equal(t, published, broker.publishedCount())

	// actual change publishes a status event
	require.NoError(t, svc.SetAvailability(ctx, product.ID, false))
	assert.Equal(t, published+1, broker.publishedCount())

	got, err := svc.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo(), newFakeRestaurantRepo(), newFakeBroker(), zap.NewNop().Sugar())

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), ProductInput{
		Name:  "Pizza Calabresa",
		Price: decimal.RequireFromString("42.00"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOverwritesFields(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurant := seedRestaurant(t, restaurants)
	svc := NewCatalogService(newFakeProductRepo(), restaurants, newFakeBroker(), zap.NewNop().Sugar())
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Margherita",
		Category:     "pizza",
		Price:        decimal.RequireFromString("45.00"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, product.ID, ProductInput{
		Name:        "Pizza Margherita Especial",
		Category:    "pizza",
		Description: "Com manjericão fresco",
		Price:       decimal.RequireFromString("49.90"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pizza Margherita Especial", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("49.90")))
	// ownership never changes on update
	assert.Equal(t, restaurant.ID, updated.RestaurantID)
}

func TestDeleteAndSoftDeactivate(t *testing.T) {
	restaurants := newFakeRestaurantRepo()
	restaurant := seedRestaurant(t, restaurants)
	products := newFakeProductRepo()
	svc := NewCatalogService(products, restaurants, newFakeBroker(), zap.NewNop().Sugar())
	ctx := context.Background()

	hard, err := svc.Create(ctx, ProductInput{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Quatro Queijos",
		Price:        decimal.RequireFromString("52.00"),
	})
	require.NoError(t, err)

	soft, err := svc.Create(ctx, ProductInput{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Calabresa",
		Price:        decimal.RequireFromString("42.00"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, hard.ID))
	_, err = svc.GetByID(ctx, hard.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.SoftDeactivate(ctx, soft.ID))
	got, err := svc.GetByID(ctx, soft.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
}

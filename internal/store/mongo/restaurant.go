package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RestaurantRepository struct {
	collection *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{
		collection: db.Collection("restaurants"),
	}
}

type restaurantDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Category    string               `bson:"category"`
	Address     string               `bson:"address"`
	Phone       string               `bson:"phone"`
	DeliveryFee primitive.Decimal128 `bson:"delivery_fee"`
	Active      bool                 `bson:"active"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func toRestaurantDoc(r *domain.Restaurant) (*restaurantDoc, error) {
	fee, err := toDecimal128(r.DeliveryFee)
	if err != nil {
		return nil, err
	}
	return &restaurantDoc{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Address:     r.Address,
		Phone:       r.Phone,
		DeliveryFee: fee,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func fromRestaurantDoc(doc *restaurantDoc) (*domain.Restaurant, error) {
	fee, err := fromDecimal128(doc.DeliveryFee)
	if err != nil {
		return nil, err
	}
	return &domain.Restaurant{
		ID:          doc.ID,
		Name:        doc.Name,
		Category:    doc.Category,
		Address:     doc.Address,
		Phone:       doc.Phone,
		DeliveryFee: fee,
		Active:      doc.Active,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = time.Now()

	doc, err := toRestaurantDoc(restaurant)
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc restaurantDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return fromRestaurantDoc(&doc)
}

func (r *RestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []restaurantDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	restaurants := make([]domain.Restaurant, 0, len(docs))
	for i := range docs {
		restaurant, err := fromRestaurantDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *restaurant)
	}

	return restaurants, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	restaurant.UpdatedAt = time.Now()

	fee, err := toDecimal128(restaurant.DeliveryFee)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"name":         restaurant.Name,
			"category":     restaurant.Category,
			"address":      restaurant.Address,
			"phone":        restaurant.Phone,
			"delivery_fee": fee,
			"active":       restaurant.Active,
			"updated_at":   restaurant.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": restaurant.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

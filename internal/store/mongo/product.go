package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

// productDoc is the persisted shape; prices live as Decimal128 so they
// round-trip without floating-point drift.
type productDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID   `bson:"restaurant_id"`
	Name         string               `bson:"name"`
	Category     string               `bson:"category"`
	Description  string               `bson:"description"`
	Price        primitive.Decimal128 `bson:"price"`
	Available    bool                 `bson:"available"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func toProductDoc(p *domain.Product) (*productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	return &productDoc{
		ID:           p.ID,
		RestaurantID: p.RestaurantID,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		Price:        price,
		Available:    p.Available,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func fromProductDoc(doc *productDoc) (*domain.Product, error) {
	price, err := fromDecimal128(doc.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Product{
		ID:           doc.ID,
		RestaurantID: doc.RestaurantID,
		Name:         doc.Name,
		Category:     doc.Category,
		Description:  doc.Description,
		Price:        price,
		Available:    doc.Available,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	doc, err := toProductDoc(product)
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc productDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return fromProductDoc(&doc)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for i := range docs {
		product, err := fromProductDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"restaurant_id": restaurantID})
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *ProductRepository) SearchByName(ctx context.Context, fragment string) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"name": primitive.Regex{
		Pattern: regexp.QuoteMeta(fragment),
		Options: "i",
	}})
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	product.UpdatedAt = time.Now()

	price, err := toDecimal128(product.Price)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"name":        product.Name,
			"category":    product.Category,
			"description": product.Description,
			"price":       price,
			"available":   product.Available,
			"updated_at":  product.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"available":  available,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set product availability: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	// ModifiedCount may be zero when the flag already held that value;
	// SetAvailability is an idempotent write, so that is fine

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

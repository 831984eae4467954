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

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("orders"),
	}
}

type orderItemDoc struct {
	ProductID   primitive.ObjectID   `bson:"product_id"`
	ProductName string               `bson:"product_name"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
	Subtotal    primitive.Decimal128 `bson:"subtotal"`
}

type orderDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	CustomerID   primitive.ObjectID   `bson:"customer_id"`
	RestaurantID primitive.ObjectID   `bson:"restaurant_id"`
	Status       domain.OrderStatus   `bson:"status"`
	Items        []orderItemDoc       `bson:"items"`
	Total        primitive.Decimal128 `bson:"total"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func toOrderDoc(o *domain.Order) (*orderDoc, error) {
	total, err := toDecimal128(o.Total)
	if err != nil {
		return nil, err
	}

	items := make([]orderItemDoc, 0, len(o.Items))
	for _, item := range o.Items {
		unitPrice, err := toDecimal128(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		subtotal, err := toDecimal128(item.Subtotal)
		if err != nil {
			return nil, err
		}
		items = append(items, orderItemDoc{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
	}

	return &orderDoc{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		Items:        items,
		Total:        total,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}, nil
}

func fromOrderDoc(doc *orderDoc) (*domain.Order, error) {
	total, err := fromDecimal128(doc.Total)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		unitPrice, err := fromDecimal128(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		subtotal, err := fromDecimal128(item.Subtotal)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
	}

	return &domain.Order{
		ID:           doc.ID,
		CustomerID:   doc.CustomerID,
		RestaurantID: doc.RestaurantID,
		Status:       doc.Status,
		Items:        items,
		Total:        total,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	doc, err := toOrderDoc(order)
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc orderDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return fromOrderDoc(&doc)
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for i := range docs {
		order, err := fromOrderDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	order.UpdatedAt = time.Now()

	doc, err := toOrderDoc(order)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"status":     doc.Status,
			"items":      doc.Items,
			"total":      doc.Total,
			"updated_at": doc.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

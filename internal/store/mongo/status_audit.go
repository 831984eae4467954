package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StatusAuditRepository struct {
	collection *mongo.Collection
}

func NewStatusAuditRepository(db *mongo.Database) *StatusAuditRepository {
	return &StatusAuditRepository{
		collection: db.Collection("status_audit"),
	}
}

func (r *StatusAuditRepository) Create(ctx context.Context, audit *domain.StatusAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create status audit: %w", err)
	}

	return nil
}

func (r *StatusAuditRepository) ListByEntity(ctx context.Context, entityID string, limit int) ([]domain.StatusAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list status audits: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.StatusAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode status audits: %w", err)
	}

	return audits, nil
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alzia/storefront/internal/core/domain"
)

const collectionOrderEvents = "order_status_events"

// EventRepository implements ports.OrderEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionOrderEvents)}
}

// Insert persists an order status event to the audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.OrderStatusEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"order_id":       event.OrderID,
		"order_number":   event.OrderNumber,
		"status":         string(event.Status),
		"payment_status": string(event.PaymentStatus),
		"changed_by":     event.ChangedBy,
		"changed_at":     event.ChangedAt.UTC(),
		"recorded_at":    time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// ListByOrder returns the audit trail of one order, oldest first.
func (r *EventRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.OrderStatusEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"order_id": orderID},
		options.Find().SetSort(bson.D{{Key: "changed_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	var out []*domain.OrderStatusEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode order events: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the order events collection.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "changed_at", Value: 1}},
	})
	return err
}

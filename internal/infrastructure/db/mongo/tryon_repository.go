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

const (
	collectionTryOnResults = "tryon_results"
	collectionTryOnHistory = "tryon_history"
)

type TryOnRepository struct {
	results *mongo.Collection
	history *mongo.Collection
}

func NewTryOnRepository(db *mongo.Database) *TryOnRepository {
	return &TryOnRepository{
		results: db.Collection(collectionTryOnResults),
		history: db.Collection(collectionTryOnHistory),
	}
}

func (r *TryOnRepository) InsertResult(ctx context.Context, res *domain.TryOnResult) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.results.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("insert try-on result: %w", err)
	}
	return nil
}

func (r *TryOnRepository) InsertHistory(ctx context.Context, h *domain.TryOnHistory) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.history.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert try-on history: %w", err)
	}
	return nil
}

func (r *TryOnRepository) ListResults(ctx context.Context, customerID string, limit int) ([]*domain.TryOnResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.results.Find(ctx, bson.M{"customer_id": customerID}, pageOptions(1, limit))
	if err != nil {
		return nil, fmt.Errorf("list try-on results: %w", err)
	}
	var out []*domain.TryOnResult
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode try-on results: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the try-on collections.
func (r *TryOnRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	byCustomer := mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index(),
	}
	if _, err := r.results.Indexes().CreateOne(ctx, byCustomer); err != nil {
		return err
	}
	_, err := r.history.Indexes().CreateOne(ctx, byCustomer)
	return err
}

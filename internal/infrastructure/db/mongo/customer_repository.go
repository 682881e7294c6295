package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const collectionCustomers = "customers"

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCustomerExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Customer
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

// UpdateProfile sets the editable fields; empty values are unset.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, id string, upd ports.ProfileUpdate) (*domain.Customer, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	for field, v := range map[string]string{
		"first_name": upd.FirstName,
		"last_name":  upd.LastName,
		"phone":      upd.Phone,
	} {
		if v == "" {
			unset[field] = ""
		} else {
			set[field] = v
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *CustomerRepository) List(ctx context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		rx := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"email": rx},
			bson.M{"first_name": rx},
			bson.M{"last_name": rx},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	var out []*domain.Customer
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode customers: %w", err)
	}
	return out, total, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.EstimatedDocumentCount(ctx)
}

func (r *CustomerRepository) SetDefaultAddress(ctx context.Context, customerID, addressID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{"$set": bson.M{"default_address_id": addressID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) ClearDefaultAddress(ctx context.Context, customerID, addressID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": customerID, "default_address_id": addressID},
		bson.M{"$unset": bson.M{"default_address_id": ""}},
	)
	if err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}

// DeductTryOnCredit only matches while the balance is positive, so
// concurrent jobs can never drive it below zero.
func (r *CustomerRepository) DeductTryOnCredit(ctx context.Context, id string, at time.Time) (*domain.Customer, error) {
	filter, update := deductCreditQuery(id, at)
	c, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, domain.ErrNoCredits
	}
	return c, err
}

func deductCreditQuery(id string, at time.Time) (filter, update bson.M) {
	filter = bson.M{"_id": id, "tryon_credits": bson.M{"$gt": 0}}
	update = bson.M{
		"$inc": bson.M{"tryon_credits": -1, "tryon_credits_used": 1},
		"$set": bson.M{"last_tryon_at": at, "updated_at": at},
	}
	return filter, update
}

func (r *CustomerRepository) GrantTryOnCredits(ctx context.Context, id string, amount int) (*domain.Customer, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"tryon_credits": amount},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
}

func (r *CustomerRepository) RecordOrder(ctx context.Context, id string, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"order_count": 1, "total_spent": amount}},
	)
	return err
}

func (r *CustomerRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Customer
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return &c, nil
}

// EnsureIndexes creates necessary indexes on the customers collection.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

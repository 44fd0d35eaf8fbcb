package customerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mistriconnect/database"
	"mistriconnect/models"
)

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo returns a new customer Repository instance using MongoDB.
func NewMongoCustomerRepo() Repository {
	repo := &mongoCustomerRepo{
		coll: database.DB().Collection("customers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("customer repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *mongoCustomerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}

func (r *mongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *mongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &customer, nil
}

func (r *mongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer by email: %w", err)
	}
	return &customer, nil
}

func (r *mongoCustomerRepo) UpdateProfile(ctx context.Context, id, username, email, phoneNumber string) error {
	update := bson.M{"$set": bson.M{
		"username":    username,
		"email":       email,
		"phoneNumber": phoneNumber,
		"updatedAt":   time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update customer profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCustomerRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"tokenHash": tokenHash}})
	if err != nil {
		return fmt.Errorf("failed to set customer token hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

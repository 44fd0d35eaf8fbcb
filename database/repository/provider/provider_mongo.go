package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mistriconnect/database"
	"mistriconnect/models"
)

// MongoProviderRepo implements Repository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo returns a new provider Repository instance using MongoDB.
func NewMongoProviderRepo() *MongoProviderRepo {
	repo := &MongoProviderRepo{
		coll: database.DB().Collection("providers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("provider repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if provider.Booked == nil {
		provider.Booked = []models.BookedSlot{}
	}
	provider.CreatedAt = time.Now()
	provider.UpdatedAt = provider.CreatedAt

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	var provider models.Provider
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&provider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider by email: %w", err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) UpdateProfile(ctx context.Context, id string, name, phoneNumber, area string, price float64) error {
	update := bson.M{"$set": bson.M{
		"name":        name,
		"phoneNumber": phoneNumber,
		"area":        area,
		"price":       price,
		"updatedAt":   time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update provider profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"tokenHash": tokenHash}})
	if err != nil {
		return fmt.Errorf("failed to set provider token hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) Search(ctx context.Context, serviceType, area string) ([]models.Provider, error) {
	filter := bson.M{
		"serviceTypes": serviceType,
		"area":         area,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("provider search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode provider search results: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) AddServiceType(ctx context.Context, id, serviceType string) error {
	update := bson.M{
		"$addToSet": bson.M{"serviceTypes": serviceType},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add service type: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProviderRepo) RemoveServiceType(ctx context.Context, id, serviceType string) error {
	update := bson.M{
		"$pull": bson.M{"serviceTypes": serviceType},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove service type: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyRating folds the rating into the aggregate with a pipeline update, so
// the read of the old value and the write of the new one are a single atomic
// document operation.
func (r *MongoProviderRepo) ApplyRating(ctx context.Context, id string, rating float64) error {
	update := mongo.Pipeline{{{Key: "$set", Value: bson.M{
		"rating": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$rating", 0}},
			rating,
			bson.M{"$divide": bson.A{
				bson.M{"$add": bson.A{"$rating", rating}},
				2,
			}},
		}},
	}}}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to apply provider rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

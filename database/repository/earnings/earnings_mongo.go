package earningsRepo

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

// MongoEarningsRepo implements Repository using MongoDB.
type MongoEarningsRepo struct {
	coll *mongo.Collection
}

// NewMongoEarningsRepo returns a new earnings Repository instance using MongoDB.
func NewMongoEarningsRepo() *MongoEarningsRepo {
	repo := &MongoEarningsRepo{
		coll: database.DB().Collection("monthly_earnings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("earnings repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoEarningsRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "providerId", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create earnings indexes: %w", err)
	}
	return nil
}

// PostJob upserts the month record and then appends the contribution with a
// jobs.jobId guard in the filter. The second update matches nothing when the
// job is already posted, so the amount is counted exactly once.
func (r *MongoEarningsRepo) PostJob(ctx context.Context, providerID string, month models.Month, jobID string, amount float64) error {
	key := bson.M{
		"providerId": providerID,
		"year":       month.Year,
		"month":      int(month.Month),
	}

	setOnInsert := bson.M{
		"id":          uuid.New().String(),
		"totalEarned": float64(0),
		"jobs":        []models.JobEarning{},
	}
	if _, err := r.coll.UpdateOne(ctx, key,
		bson.M{"$setOnInsert": setOnInsert},
		options.Update().SetUpsert(true),
	); err != nil {
		return fmt.Errorf("failed to upsert earnings record: %w", err)
	}

	filter := bson.M{
		"providerId": providerID,
		"year":       month.Year,
		"month":      int(month.Month),
		"jobs.jobId": bson.M{"$ne": jobID},
	}
	update := bson.M{
		"$push": bson.M{"jobs": models.JobEarning{JobID: jobID, Amount: amount}},
		"$inc":  bson.M{"totalEarned": amount},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to post job earnings: %w", err)
	}
	return nil
}

func (r *MongoEarningsRepo) GetMonth(ctx context.Context, providerID string, month models.Month) (*models.MonthlyEarnings, error) {
	filter := bson.M{
		"providerId": providerID,
		"year":       month.Year,
		"month":      int(month.Month),
	}
	var record models.MonthlyEarnings
	err := r.coll.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch earnings record: %w", err)
	}
	return &record, nil
}

// ListMonths returns the provider's records ordered chronologically by the
// represented calendar month, not by insertion order.
func (r *MongoEarningsRepo) ListMonths(ctx context.Context, providerID string) ([]models.MonthlyEarnings, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list earnings records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.MonthlyEarnings
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode earnings records: %w", err)
	}
	return records, nil
}

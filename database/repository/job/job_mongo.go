package jobRepo

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

// MongoJobRepo implements Repository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo returns a new job request Repository instance using MongoDB.
func NewMongoJobRepo() *MongoJobRepo {
	repo := &MongoJobRepo{
		coll: database.DB().Collection("job_requests"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("job repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoJobRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create job request indexes: %w", err)
	}
	return nil
}

func (r *MongoJobRepo) Create(ctx context.Context, job *models.JobRequest) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	job.Status = models.StatusPending
	job.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to insert job request: %w", err)
	}
	return nil
}

func (r *MongoJobRepo) GetByID(ctx context.Context, id string) (*models.JobRequest, error) {
	var job models.JobRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch job request %s: %w", id, err)
	}
	return &job, nil
}

func (r *MongoJobRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.JobRequest, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

func (r *MongoJobRepo) ListByProvider(ctx context.Context, providerID string) ([]models.JobRequest, error) {
	return r.list(ctx, bson.M{"providerId": providerID})
}

func (r *MongoJobRepo) list(ctx context.Context, filter bson.M) ([]models.JobRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list job requests: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.JobRequest
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode job requests: %w", err)
	}
	return jobs, nil
}

func (r *MongoJobRepo) RejectIfPending(ctx context.Context, id string) error {
	filter := bson.M{"id": id, "status": models.StatusPending}
	update := bson.M{"$set": bson.M{"status": models.StatusRejected}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reject job request: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

func (r *MongoJobRepo) DeleteIfPending(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "status": models.StatusPending})
	if err != nil {
		return fmt.Errorf("failed to delete job request: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// SetReview attaches the review with both guards in the filter: decided
// status and no prior rating. One conditional write makes the review
// once-only even under concurrent submissions.
func (r *MongoJobRepo) SetReview(ctx context.Context, id string, rating int, review string) error {
	filter := bson.M{"id": id, "status": bson.M{"$ne": models.StatusPending}, "rating": 0}
	update := bson.M{"$set": bson.M{"rating": rating, "review": review}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to attach review: %w", err)
	}
	if res.MatchedCount == 0 {
		job, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if job.Status == models.StatusPending {
			return ErrNotPending
		}
		return ErrAlreadyReviewed
	}
	return nil
}

// classifyMiss distinguishes a missing document from a status-guard miss.
func (r *MongoJobRepo) classifyMiss(ctx context.Context, id string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to classify conditional miss: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrNotPending
}

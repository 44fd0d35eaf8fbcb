package schedulerRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mistriconnect/database"
	earningsRepo "mistriconnect/database/repository/earnings"
	"mistriconnect/models"
)

// MongoSchedulerRepo implements Repository over the job_requests and
// providers collections, delegating the ledger post to the earnings
// repository so the idempotence guard has exactly one implementation.
type MongoSchedulerRepo struct {
	jobColl      *mongo.Collection
	providerColl *mongo.Collection
	earnings     earningsRepo.Repository
}

// NewMongoSchedulerRepo returns a new scheduler Repository instance using MongoDB.
func NewMongoSchedulerRepo(earnings earningsRepo.Repository) *MongoSchedulerRepo {
	db := database.DB()
	return &MongoSchedulerRepo{
		jobColl:      db.Collection("job_requests"),
		providerColl: db.Collection("providers"),
		earnings:     earnings,
	}
}

// AcceptBooking runs the accept as a single multi-document transaction.
// Every write carries its own guard in the filter, so a lost race aborts the
// whole transaction and the request stays pending.
func (repo *MongoSchedulerRepo) AcceptBooking(ctx context.Context, job *models.JobRequest, month models.Month) error {
	client := repo.jobColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// Flip pending -> accepted; the status guard enforces terminality
		// even if another accept slipped in after the caller's pre-check.
		res, err := repo.jobColl.UpdateOne(sc,
			bson.M{"id": job.ID, "providerId": job.ProviderID, "status": models.StatusPending},
			bson.M{"$set": bson.M{"status": models.StatusAccepted}},
		)
		if err != nil {
			return fmt.Errorf("accept status flip failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotPending
		}

		// Commit the slot; the $not $elemMatch guard makes the check and
		// the insert one atomic document update.
		slotFilter := bson.M{
			"id": job.ProviderID,
			"booked": bson.M{
				"$not": bson.M{
					"$elemMatch": bson.M{"date": job.Date, "slot": job.Slot},
				},
			},
		}
		slotUpdate := bson.M{
			"$push": bson.M{"booked": models.BookedSlot{Date: job.Date, Slot: job.Slot}},
		}
		res, err = repo.providerColl.UpdateOne(sc, slotFilter, slotUpdate)
		if err != nil {
			return fmt.Errorf("slot commit failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotTaken
		}

		// Post to the earnings ledger, keyed by the month of the job's
		// scheduled date. The session rides in on the context, so the
		// ledger's jobs.jobId idempotence guard runs inside this
		// transaction.
		if err := repo.earnings.PostJob(sc, job.ProviderID, month, job.ID, job.Price); err != nil {
			return err
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

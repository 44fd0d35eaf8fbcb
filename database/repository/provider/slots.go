package providerRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"mistriconnect/models"
)

// IsSlotAvailable reports whether the (date, slot) pair is absent from the
// provider's committed set. This is a read-side convenience; CommitSlot is
// the authoritative guard.
func (r *MongoProviderRepo) IsSlotAvailable(ctx context.Context, id, date, slot string) (bool, error) {
	filter := bson.M{
		"id": id,
		"booked": bson.M{
			"$elemMatch": bson.M{"date": date, "slot": slot},
		},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to query slot availability: %w", err)
	}
	return count == 0, nil
}

// CommitSlot inserts the (date, slot) pair into the provider's committed
// set. The filter excludes documents that already contain the pair, so the
// check and the insert are a single document-level atomic update: two
// concurrent commits on the same pair yield exactly one winner.
func (r *MongoProviderRepo) CommitSlot(ctx context.Context, id, date, slot string) error {
	filter := bson.M{
		"id": id,
		"booked": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{"date": date, "slot": slot},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{"booked": models.BookedSlot{Date: date, Slot: slot}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to commit slot: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the provider is missing or the pair is already committed.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotTaken
	}
	return nil
}

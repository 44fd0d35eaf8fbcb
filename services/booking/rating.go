package booking

import "context"

// AccumulateRating folds a new rating into the current aggregate. An unrated
// provider (aggregate 0) takes the new rating as-is; otherwise the aggregate
// becomes the average of the old aggregate and the new rating. This is the
// product's documented rule, not a running mean: recent ratings weigh more.
func AccumulateRating(current, incoming float64) float64 {
	if current == 0 {
		return incoming
	}
	return (current + incoming) / 2
}

func (svc *DefaultBookingService) applyRating(ctx context.Context, providerID string, rating float64) error {
	return svc.Providers.ApplyRating(ctx, providerID, rating)
}

package models

import "time"

// JobEarning is one accepted job's contribution to a monthly record.
type JobEarning struct {
	JobID  string  `bson:"jobId" json:"jobId"`
	Amount float64 `bson:"amount" json:"amount"`
}

// MonthlyEarnings is the per-provider, per-calendar-month ledger of
// accepted-job income. One record exists per (provider, year, month),
// created lazily on the first accepted job of that month. Records are
// additive only: totalEarned always equals the sum of jobs[].amount.
type MonthlyEarnings struct {
	ID          string       `bson:"id" json:"id"`
	ProviderID  string       `bson:"providerId" json:"providerId"`
	Year        int          `bson:"year" json:"year"`
	MonthNum    int          `bson:"month" json:"month"`
	TotalEarned float64      `bson:"totalEarned" json:"totalEarned"`
	Jobs        []JobEarning `bson:"jobs" json:"jobs"`
}

// MonthKey returns the structured month this record covers.
func (e MonthlyEarnings) MonthKey() Month {
	return Month{Year: e.Year, Month: time.Month(e.MonthNum)}
}

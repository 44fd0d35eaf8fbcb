package models

import "time"

// Job request statuses. Pending is the only non-terminal state: a request
// moves to accepted or rejected exactly once and never changes again.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Scheduling slot labels. The slot is the unit of scheduling granularity.
const (
	SlotForenoon  = "forenoon"
	SlotAfternoon = "afternoon"
)

// DateLayout is the wire format for scheduled dates.
const DateLayout = "2006-01-02"

// IsValidSlot reports whether the given label is a known slot.
func IsValidSlot(slot string) bool {
	return slot == SlotForenoon || slot == SlotAfternoon
}

// JobRequest is a single customer-to-provider booking proposal.
type JobRequest struct {
	ID          string    `bson:"id" json:"id"`
	CustomerID  string    `bson:"customerId" json:"customerId"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Description string    `bson:"description" json:"description"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slot        string    `bson:"slot" json:"slot"`
	Status      string    `bson:"status" json:"status"`
	Price       float64   `bson:"price" json:"price"`
	Rating      int       `bson:"rating" json:"rating,omitempty"` // 1..5; 0 = not reviewed, always stored so filters can match it
	Review      string    `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
